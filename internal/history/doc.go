// Package history persists derived snapshots to SQLite so the API can serve
// per-vehicle time series beyond the live store's TTL. A background loop
// prunes rows older than the configured retention.
package history
