// Package jwt implements the access token codec: HS256 signing and
// verification of the typed claim set carried by tokengate access tokens.
//
// The codec is deliberately stateless. Revocation is not visible at this
// layer; callers must check the token id against the cache registry after a
// successful parse.
package jwt
