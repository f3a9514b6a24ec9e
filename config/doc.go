// Package config loads storage kit configuration from YAML files and
// environment variables, so applications can declare their provider map and
// handler options outside code.
package config
