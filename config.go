package tokengate

import (
	"errors"
	"time"
)

// Config defines the engine configuration.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	JWT           JWTConfig
	Cache         CacheConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
	DefaultLocale string
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures the token codec and the two token lifetimes.
// Lifetimes are expressed in minutes because they double as registry entry
// TTLs; values below the registry minimum fall back to the defaults
// (see cache.NormalizeTimeoutMinutes).
type JWTConfig struct {
	SigningKey             []byte
	Issuer                 string
	Audience               string
	Leeway                 time.Duration
	AccessLifetimeMinutes  int
	RefreshLifetimeMinutes int
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig configures the Redis-backed registries.
type CacheConfig struct {
	RedisPrefix string
}

// AuditConfig configures the audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig configures the in-process metrics.
type MetricsConfig struct {
	Enabled bool
}

const (
	defaultAccessLifetimeMinutes  = 15
	defaultRefreshLifetimeMinutes = 7 * 24 * 60

	// minSigningKeyBytes matches the HS256 key size recommendation: a key
	// shorter than the hash output weakens the signature.
	minSigningKeyBytes = 32
)

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessLifetimeMinutes:  defaultAccessLifetimeMinutes,
			RefreshLifetimeMinutes: defaultRefreshLifetimeMinutes,
		},
		Cache: CacheConfig{
			RedisPrefix: "tg",
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
		DefaultLocale: "en-US",
	}
}

// Validate checks the configuration for structural problems that would make
// the engine unsafe or unusable.
func (c Config) Validate() error {
	if len(c.JWT.SigningKey) == 0 {
		return errors.New("JWT SigningKey is required")
	}
	if len(c.JWT.SigningKey) < minSigningKeyBytes {
		return errors.New("JWT SigningKey must be at least 32 bytes")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be between 0 and 2 minutes")
	}
	if c.JWT.RefreshLifetimeMinutes > 0 &&
		c.JWT.RefreshLifetimeMinutes < c.JWT.AccessLifetimeMinutes {
		return errors.New("refresh lifetime must not be shorter than access lifetime")
	}
	if c.DefaultLocale == "" {
		return errors.New("DefaultLocale is required")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.SigningKey = cloneBytes(cfg.JWT.SigningKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
