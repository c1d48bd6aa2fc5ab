// Package internal holds crypto-random helpers shared by the token engine:
// token id minting and refresh token generation.
package internal
