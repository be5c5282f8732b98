// Package memory provides in-memory implementations of the storage
// ports. They back the service tests and act as the injectable
// fallback when no database is configured: vector similarity is then
// computed in-process instead of natively by the store.
package memory
