// Package logger provides structured logging for the storage kit on top of
// zerolog, with component tagging and field helpers.
package logger
