package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mverell/tokengate"
)

type allowAllStore struct{}

func (allowAllStore) ValidateCredentials(_ context.Context, clientID, _ string) (*tokengate.Identity, error) {
	return &tokengate.Identity{ID: clientID}, nil
}

func (allowAllStore) GetByID(_ context.Context, identityID string) (*tokengate.Identity, error) {
	return &tokengate.Identity{ID: identityID}, nil
}

func newGuardEngine(t *testing.T) (*tokengate.Engine, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	engine, err := tokengate.New().
		WithConfig(tokengate.Config{
			JWT: tokengate.JWTConfig{
				SigningKey:             []byte("unit-test-signing-key-0123456789"),
				AccessLifetimeMinutes:  15,
				RefreshLifetimeMinutes: 60,
			},
			DefaultLocale: "en-US",
		}).
		WithRedis(client).
		WithIdentityStore(allowAllStore{}).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("engine build failed: %v", err)
	}

	return engine, func() {
		engine.Close()
		_ = client.Close()
		mr.Close()
	}
}

func guardedHandler(t *testing.T, engine *tokengate.Engine) http.Handler {
	t.Helper()

	return Guard(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := AuthResultFromContext(r.Context())
		if !ok {
			t.Errorf("auth result missing from guarded handler context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(res.IdentityID))
	}))
}

func TestGuardAcceptsValidBearerToken(t *testing.T) {
	engine, done := newGuardEngine(t)
	defer done()

	pair, err := engine.IssueTokenPair(context.Background(), "svc-1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	guardedHandler(t, engine).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if body := recorder.Body.String(); body != "svc-1" {
		t.Fatalf("expected identity in body, got %q", body)
	}
}

func TestGuardRejectsMissingAndMalformedHeaders(t *testing.T) {
	engine, done := newGuardEngine(t)
	defer done()

	handler := guardedHandler(t, engine)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "token-without-scheme"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			request.Header.Set("Authorization", header)
		}

		handler.ServeHTTP(recorder, request)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, recorder.Code)
		}
	}
}

func TestGuardRejectsRevokedToken(t *testing.T) {
	engine, done := newGuardEngine(t)
	defer done()

	pair, err := engine.IssueTokenPair(context.Background(), "svc-1", "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if err := engine.Revoke(context.Background(), pair.AccessToken); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	guardedHandler(t, engine).ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d", recorder.Code)
	}
}

func TestGuardNilEngine(t *testing.T) {
	handler := Guard(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Errorf("handler must not run without an engine")
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.Header.Set("Authorization", "Bearer sometoken")

	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestBearerTokenExtraction(t *testing.T) {
	if token, ok := BearerToken("Bearer abc.def.ghi"); !ok || token != "abc.def.ghi" {
		t.Fatalf("expected token extraction, got %q ok=%v", token, ok)
	}
	if _, ok := BearerToken("bearer abc"); ok {
		t.Fatalf("scheme is case sensitive; lowercase must not match")
	}
	if _, ok := BearerToken(""); ok {
		t.Fatalf("empty header must not match")
	}
}
