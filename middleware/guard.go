package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mverell/tokengate"
)

type authResultContextKey struct{}

// AuthResultFromContext returns the validation result stored by [Guard].
func AuthResultFromContext(ctx context.Context) (*tokengate.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*tokengate.AuthResult)
	return res, ok
}

// Guard returns middleware that requires a valid bearer access token on
// every request. The replay-guard check runs before the wrapped handler; on
// success the [tokengate.AuthResult] is attached to the request context.
//
// Failures answer 401 with a generic body so callers cannot distinguish
// revoked from expired from never-issued tokens.
func Guard(engine *tokengate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			res, err := engine.Validate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(value string) (string, bool) {
	return bearerToken(value)
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
