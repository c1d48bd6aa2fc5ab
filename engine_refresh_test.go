package tokengate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRefreshIssuesNewPair(t *testing.T) {
	engine, _, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	first, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "de-DE")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	second, err := engine.Refresh(ctx, first.AccessToken, first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if second.AccessToken == first.AccessToken {
		t.Fatalf("expected a fresh access token")
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("expected a rotated refresh token")
	}

	result, err := engine.Validate(ctx, second.AccessToken)
	if err != nil {
		t.Fatalf("validate of refreshed token failed: %v", err)
	}
	if result.IdentityID != "svc-1" {
		t.Fatalf("expected identity svc-1, got %s", result.IdentityID)
	}
	if result.Locale != "de-DE" {
		t.Fatalf("expected locale carried through refresh, got %s", result.Locale)
	}
}

func TestRefreshAcceptsExpiredAccessToken(t *testing.T) {
	engine, _, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	// Stand in for the real pair's access token with one that is past its
	// expiry but correctly signed for the same identity. Only signature and
	// subject matter on the refresh path.
	expired := expiredAccessToken(t, "svc-1", uuid.NewString())

	renewed, err := engine.Refresh(ctx, expired, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh with expired access token failed: %v", err)
	}
	if _, err := engine.Validate(ctx, renewed.AccessToken); err != nil {
		t.Fatalf("validate of renewed token failed: %v", err)
	}
}

func TestRefreshRotationInvalidatesOldToken(t *testing.T) {
	engine, _, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	first, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if _, err := engine.Refresh(ctx, first.AccessToken, first.RefreshToken); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	// Replaying the consumed refresh token must fail.
	if _, err := engine.Refresh(ctx, first.AccessToken, first.RefreshToken); !errors.Is(err, ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired on replay, got %v", err)
	}
}

func TestRefreshMissingInput(t *testing.T) {
	engine, _, _, done := newTestEngine(t)
	defer done()

	if _, err := engine.Refresh(context.Background(), "", "refresh"); !errors.Is(err, ErrTokenAndRefreshTokenRequired) {
		t.Fatalf("expected ErrTokenAndRefreshTokenRequired, got %v", err)
	}
	if _, err := engine.Refresh(context.Background(), "access", ""); !errors.Is(err, ErrTokenAndRefreshTokenRequired) {
		t.Fatalf("expected ErrTokenAndRefreshTokenRequired, got %v", err)
	}
}

func TestRefreshRejectsForgedAccessToken(t *testing.T) {
	engine, mr, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	otherKey := []byte("another-signing-key-9876543210zz")
	now := time.Now()
	forged := signAccessToken(t, otherKey, "svc-1", uuid.NewString(), now, now.Add(15*time.Minute))

	stored, err := mr.Get("tg:RefreshToken+svc-1")
	if err != nil {
		t.Fatalf("refresh registry read failed: %v", err)
	}

	if _, err := engine.Refresh(ctx, forged, pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for forged token, got %v", err)
	}

	// Rejection must leave the registry untouched.
	after, err := mr.Get("tg:RefreshToken+svc-1")
	if err != nil {
		t.Fatalf("refresh registry read failed: %v", err)
	}
	if after != stored {
		t.Fatalf("forged refresh attempt mutated the refresh registry")
	}
}

func TestRefreshWrongRefreshToken(t *testing.T) {
	engine, _, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	if _, err := engine.Refresh(ctx, pair.AccessToken, "not-the-issued-token"); !errors.Is(err, ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired for mismatched token, got %v", err)
	}
}

func TestRefreshAfterRegistryExpiry(t *testing.T) {
	engine, mr, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	// Past the refresh registry TTL the entry is gone and the token no longer
	// matches anything.
	mr.FastForward(61 * time.Minute)

	if _, err := engine.Refresh(ctx, pair.AccessToken, pair.RefreshToken); !errors.Is(err, ErrRefreshTokenExpired) {
		t.Fatalf("expected ErrRefreshTokenExpired after TTL, got %v", err)
	}
}

func TestRefreshTokenWithoutSubject(t *testing.T) {
	engine, _, _, done := newTestEngine(t)
	defer done()

	now := time.Now()
	noSubject := signAccessToken(t, testSigningKey, "", uuid.NewString(), now, now.Add(15*time.Minute))

	if _, err := engine.Refresh(context.Background(), noSubject, "refresh"); !errors.Is(err, ErrNoIdentityInToken) {
		t.Fatalf("expected ErrNoIdentityInToken, got %v", err)
	}
}

func TestRefreshIdentityNoLongerExists(t *testing.T) {
	engine, _, identities, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	identities.missing["svc-1"] = true

	if _, err := engine.Refresh(ctx, pair.AccessToken, pair.RefreshToken); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestRefreshIdentityBlocked(t *testing.T) {
	engine, _, identities, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	identities.blocked["svc-1"] = true

	if _, err := engine.Refresh(ctx, pair.AccessToken, pair.RefreshToken); !errors.Is(err, ErrIdentityBlocked) {
		t.Fatalf("expected ErrIdentityBlocked, got %v", err)
	}
}

func TestRefreshCacheUnavailable(t *testing.T) {
	engine, mr, _, done := newTestEngine(t)
	defer done()

	ctx := context.Background()
	pair, err := engine.Authenticate(ctx, "svc-1", "correct-secret-123", "")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	mr.SetError("registry down")
	defer mr.SetError("")

	if _, err := engine.Refresh(ctx, pair.AccessToken, pair.RefreshToken); !errors.Is(err, ErrCacheUnavailable) {
		t.Fatalf("expected ErrCacheUnavailable, got %v", err)
	}
}
