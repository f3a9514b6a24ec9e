// Package testutil provides an in-memory storage backend for tests. It keeps
// buckets and objects in maps and supports per-operation failure injection,
// so handler and facade behavior can be exercised without a real provider.
package testutil
