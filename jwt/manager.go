package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the codec configuration.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	AccessTTL  time.Duration
	SigningKey []byte
	Issuer     string
	Audience   string
	Leeway     time.Duration
}

// Manager encodes and verifies HS256 access tokens. It is a pure
// transformation layer: no cache or store access happens here.
type Manager struct {
	config Config
}

// AccessClaims is the typed claim set carried inside an access token.
// The token id lives in RegisteredClaims.ID (the "jti" claim) and the
// identity id in RegisteredClaims.Subject.
type AccessClaims struct {
	Locale string `json:"locale,omitempty"`
	jwt.RegisteredClaims
}

// NewManager validates the codec configuration and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	if len(cfg.SigningKey) == 0 {
		return nil, errors.New("hs256 requires signing key")
	}

	return &Manager{config: cfg}, nil
}

// CreateAccess signs a fresh access token for the given subject, token id,
// and locale. It returns the compact token string and its expiry.
func (j *Manager) CreateAccess(subject, tokenID, locale string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.config.AccessTTL)

	claims := AccessClaims{
		Locale: locale,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   subject,
			Issuer:    j.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if j.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{j.config.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(j.config.SigningKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ParseAccess verifies signature, algorithm, and time claims. Expired tokens
// fail with an error matching [jwt.ErrTokenExpired] under errors.Is.
func (j *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	return j.parse(tokenStr, true)
}

// ParseAccessExpired verifies signature and algorithm only. The refresh path
// uses it: the presented access token is expected to be past its expiry, and
// only its authenticity matters.
func (j *Manager) ParseAccessExpired(tokenStr string) (*AccessClaims, error) {
	return j.parse(tokenStr, false)
}

func (j *Manager) parse(tokenStr string, validateClaims bool) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if !validateClaims {
		options = append(options, jwt.WithoutClaimsValidation())
	} else {
		if j.config.Leeway > 0 {
			options = append(options, jwt.WithLeeway(j.config.Leeway))
		}
		if j.config.Issuer != "" {
			options = append(options, jwt.WithIssuer(j.config.Issuer))
		}
		if j.config.Audience != "" {
			options = append(options, jwt.WithAudience(j.config.Audience))
		}
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return j.config.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
