package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key has no live entry, whether it
// was never written, expired naturally, or was removed.
var ErrNotFound = errors.New("cache entry not found")

// ErrUnavailable wraps infrastructure failures of the backing store.
var ErrUnavailable = errors.New("cache unavailable")

// Store is the key/value registry consumed by the token engine. Entries
// carry an independent TTL and expire on their own; presence of a key is
// authoritative for token validity.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Contains(ctx context.Context, key string) (bool, error)
	Remove(ctx context.Context, key string) error
}

const (
	jtiKeyPrefix     = "Jti+"
	refreshKeyPrefix = "RefreshToken+"
)

// JtiKey derives the replay-guard registry key for a token id.
func JtiKey(tokenID string) string {
	return jtiKeyPrefix + tokenID
}

// RefreshKey derives the refresh registry key for an identity id.
func RefreshKey(identityID string) string {
	return refreshKeyPrefix + identityID
}

// minTimeoutMinutes is the smallest entry lifetime the registries accept.
// TTLs shorter than one minute would make freshly issued tokens unusable.
const minTimeoutMinutes = 1

// NormalizeTimeoutMinutes applies the registry TTL policy: a configured
// lifetime below the one-minute minimum falls back to def. def itself is
// clamped to the minimum so the result is always usable.
func NormalizeTimeoutMinutes(minutes, def int) int {
	if def < minTimeoutMinutes {
		def = minTimeoutMinutes
	}
	if minutes < minTimeoutMinutes {
		return def
	}
	return minutes
}
