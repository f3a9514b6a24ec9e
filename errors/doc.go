// Package errors defines the closed error taxonomy shared by every storage
// backend and the request-handling layer. Each code carries a fixed HTTP
// status, and any error leaving the kit boundary is a *StorageError.
package errors
