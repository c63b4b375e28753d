package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/auctiond/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoPool is returned when the service was built without a pool
	ErrNoPool = errors.New("redis: no pool available")
)

// Forever stores a key without expiry
const Forever time.Duration = 0

// Service is the subset of redis commands used by the cache providers and
// the health check
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	// GetWithTTL returns the value with its remaining lifetime, Forever when
	// the key never expires
	GetWithTTL(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, keys ...string) (int, error)
	Ping(c ctx.Ctx) error
	Name() string
}
