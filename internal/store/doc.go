// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. The only implementation keeps accounts in
// memory, seeded from configuration at startup.
package store
