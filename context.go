package tokengate

import "context"

type clientIPContextKey struct{}
type localeContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The engine records
// it on audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithLocale attaches a requested culture code to ctx. When an operation is
// called with an empty locale argument, the context value is used before
// falling back to [Config.DefaultLocale].
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func localeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale
}
