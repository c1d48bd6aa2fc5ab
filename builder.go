package tokengate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mverell/tokengate/cache"
	"github.com/mverell/tokengate/internal"
	"github.com/mverell/tokengate/internal/flows"
	"github.com/mverell/tokengate/jwt"
)

// Builder assembles an [Engine]. Collaborators are injected explicitly; the
// engine holds no package-level state.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	cache  cache.Store

	identityStore      IdentityStore
	permissionResolver PermissionResolver
	auditSink          AuditSink

	built bool
}

// New returns a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the token registries.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithCache overrides the registry store. Intended for alternative cache
// backends and tests; when set, WithRedis is ignored.
func (b *Builder) WithCache(store cache.Store) *Builder {
	b.cache = store
	return b
}

// WithIdentityStore sets the identity store used for credential validation
// and the refresh-time standing re-check.
func (b *Builder) WithIdentityStore(store IdentityStore) *Builder {
	b.identityStore = store
	return b
}

// WithPermissionResolver sets the optional RBAC callback attached to
// validation results.
func (b *Builder) WithPermissionResolver(resolver PermissionResolver) *Builder {
	b.permissionResolver = resolver
	return b
}

// WithAuditSink sets the sink receiving audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process metrics counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, normalizes the registry lifetimes, and
// wires the engine. A Builder can be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.cache == nil && b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.identityStore == nil {
		return nil, errors.New("identity store required")
	}

	// Normalize before validating so the lifetime ordering check sees the
	// values the engine will actually run with. A zero access lifetime clamps
	// to the default and must not slip past the refresh >= access rule.
	cfg.JWT.AccessLifetimeMinutes = cache.NormalizeTimeoutMinutes(
		cfg.JWT.AccessLifetimeMinutes, defaultAccessLifetimeMinutes)
	cfg.JWT.RefreshLifetimeMinutes = cache.NormalizeTimeoutMinutes(
		cfg.JWT.RefreshLifetimeMinutes, defaultRefreshLifetimeMinutes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	codec, err := jwt.NewManager(jwt.Config{
		AccessTTL:  time.Duration(cfg.JWT.AccessLifetimeMinutes) * time.Minute,
		SigningKey: cloneBytes(cfg.JWT.SigningKey),
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		Leeway:     cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	store := b.cache
	if store == nil {
		store = cache.NewRedisStore(b.redis, cfg.Cache.RedisPrefix)
	}

	engine := &Engine{
		config:      cfg,
		codec:       codec,
		store:       store,
		identities:  b.identityStore,
		permissions: b.permissionResolver,
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)
	engine.flows = flows.New(engine.flowDeps())

	b.built = true

	return engine, nil
}

func (e *Engine) flowDeps() flows.Deps {
	issueDeps := flows.IssueDeps{
		NewTokenID:      internal.NewTokenID,
		NewRefreshToken: internal.NewRefreshToken,
		JtiKey:          cache.JtiKey,
		RefreshKey:      cache.RefreshKey,
		AccessLifetimeMinutes: func() int {
			return e.config.JWT.AccessLifetimeMinutes
		},
		RefreshLifetimeMinutes: func() int {
			return e.config.JWT.RefreshLifetimeMinutes
		},
		EncodeAccess: e.codec.CreateAccess,
		Now:          time.Now,
		Store:        e.store,
	}

	issue := func(ctx context.Context, identityID, locale string) flows.IssueResult {
		return flows.RunIssue(ctx, identityID, locale, issueDeps)
	}

	var resolvePermissions func(ctx context.Context, identityID string) ([]string, error)
	if e.permissions != nil {
		resolvePermissions = e.permissions
	}

	return flows.Deps{
		Authenticate: flows.AuthenticateDeps{
			ValidateCredentials: func(ctx context.Context, clientID, secret string) (*flows.IdentityRecord, error) {
				identity, err := e.identities.ValidateCredentials(ctx, clientID, secret)
				if err != nil {
					return nil, err
				}
				if identity == nil {
					return nil, nil
				}
				return &flows.IdentityRecord{ID: identity.ID, Blocked: identity.Blocked}, nil
			},
			DefaultLocale: func() string { return e.config.DefaultLocale },
			Issue:         issue,
		},
		Issue: issueDeps,
		Validate: flows.ValidateDeps{
			ParseAccess:        e.codec.ParseAccess,
			JtiKey:             cache.JtiKey,
			ResolvePermissions: resolvePermissions,
			Store:              e.store,
		},
		Refresh: flows.RefreshDeps{
			ParseAccessExpired: e.codec.ParseAccessExpired,
			RefreshKey:         cache.RefreshKey,
			LoadIdentity: func(ctx context.Context, identityID string) (*flows.IdentityRecord, error) {
				identity, err := e.identities.GetByID(ctx, identityID)
				if err != nil {
					return nil, err
				}
				if identity == nil {
					return nil, nil
				}
				return &flows.IdentityRecord{ID: identity.ID, Blocked: identity.Blocked}, nil
			},
			DefaultLocale: func() string { return e.config.DefaultLocale },
			Issue:         issue,
			Store:         e.store,
			StoreMiss:     cache.ErrNotFound,
		},
		Revoke: flows.RevokeDeps{
			ParseAccess: e.codec.ParseAccess,
			JtiKey:      cache.JtiKey,
			RefreshKey:  cache.RefreshKey,
			Store:       e.store,
		},
	}
}
