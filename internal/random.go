package internal

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

const refreshTokenSize = 32

// NewTokenID mints the unique per-issuance token id ("jti"). UUIDv4 gives
// collision probability low enough to treat ids as globally unique.
func NewTokenID() string {
	return uuid.NewString()
}

// NewRefreshToken returns an opaque high-entropy refresh token:
// 32 crypto-random bytes, Base64-encoded without padding.
func NewRefreshToken() (string, error) {
	var raw [refreshTokenSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}
