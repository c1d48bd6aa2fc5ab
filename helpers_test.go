package tokengate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

var testSigningKey = []byte("unit-test-signing-key-0123456789")

type stubIdentityStore struct {
	secrets map[string]string
	blocked map[string]bool
	missing map[string]bool
}

func newStubIdentityStore() *stubIdentityStore {
	return &stubIdentityStore{
		secrets: map[string]string{"svc-1": "correct-secret-123"},
		blocked: map[string]bool{},
		missing: map[string]bool{},
	}
}

func (s *stubIdentityStore) ValidateCredentials(_ context.Context, clientID, secret string) (*Identity, error) {
	stored, ok := s.secrets[clientID]
	if !ok || stored != secret {
		return nil, errors.New("credentials do not match")
	}
	return &Identity{ID: clientID, Blocked: s.blocked[clientID]}, nil
}

func (s *stubIdentityStore) GetByID(_ context.Context, identityID string) (*Identity, error) {
	if s.missing[identityID] {
		return nil, errors.New("identity not found")
	}
	if _, ok := s.secrets[identityID]; !ok {
		return nil, errors.New("identity not found")
	}
	return &Identity{ID: identityID, Blocked: s.blocked[identityID]}, nil
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.JWT.SigningKey = append([]byte(nil), testSigningKey...)
	cfg.JWT.Issuer = "tokengate-test"
	cfg.JWT.Audience = "tokengate-test"
	cfg.JWT.AccessLifetimeMinutes = 15
	cfg.JWT.RefreshLifetimeMinutes = 60
	return cfg
}

func newTestEngineWithConfig(t *testing.T, cfg Config) (*Engine, *miniredis.Miniredis, *stubIdentityStore, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	identities := newStubIdentityStore()

	engine, err := New().
		WithConfig(cfg).
		WithRedis(client).
		WithIdentityStore(identities).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("engine build failed: %v", err)
	}

	done := func() {
		engine.Close()
		_ = client.Close()
		mr.Close()
	}
	return engine, mr, identities, done
}

func newTestEngine(t *testing.T) (*Engine, *miniredis.Miniredis, *stubIdentityStore, func()) {
	t.Helper()
	return newTestEngineWithConfig(t, testConfig())
}

// signAccessToken mints a token outside the engine so tests can control the
// time claims. issuer/audience match testConfig.
func signAccessToken(t *testing.T, key []byte, subject, tokenID string, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := jwtlib.RegisteredClaims{
		ID:        tokenID,
		Subject:   subject,
		Issuer:    "tokengate-test",
		Audience:  jwtlib.ClaimStrings{"tokengate-test"},
		IssuedAt:  jwtlib.NewNumericDate(issuedAt),
		NotBefore: jwtlib.NewNumericDate(issuedAt),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return signed
}

func expiredAccessToken(t *testing.T, subject, tokenID string) string {
	t.Helper()
	now := time.Now()
	return signAccessToken(t, testSigningKey, subject, tokenID, now.Add(-time.Hour), now.Add(-30*time.Minute))
}
