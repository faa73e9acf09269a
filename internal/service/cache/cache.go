package cache

import "time"

// BytesCache stores serialized analysis responses with a TTL. Backends:
// in-process TTL map, or Redis when responses should survive restarts
// and be shared across instances.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
