// Package store holds the live fleet state: the most recent derived
// snapshot per vehicle, with TTL eviction so vehicles that stop reporting
// drop out of API responses and broadcasts.
package store
