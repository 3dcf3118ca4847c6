package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the result attached to a client-supplied
// idempotency key so a retried request can be answered without re-executing.
type IdempotencyStore interface {
	// Remember stores value under key if the key is unseen.
	// Returns (true, value) when the key was newly stored, or
	// (false, previous) when the key was already present.
	Remember(ctx context.Context, key, value string, ttl time.Duration) (bool, string, error)

	// Forget removes a key, allowing the operation to be retried.
	// Used when the guarded operation failed after the key was reserved.
	Forget(ctx context.Context, key string) error

	// Close releases store resources.
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a processed key is remembered. Default: 24 hours.
	TTL time.Duration

	// Enabled toggles idempotency checking. Default: true.
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
