package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the entropy per token. 128 bits keeps collisions and guessing
// improbable without any coordination.
const TokenBytes = 16

// tokenLen is the hex-encoded token length.
const tokenLen = TokenBytes * 2

// TokenGenerator mints opaque request identifiers from a cryptographically
// strong random source. Tokens are never derived from client-controlled data.
type TokenGenerator struct{}

// New creates a token generator.
func New() *TokenGenerator {
	return &TokenGenerator{}
}

// Next returns a fresh hex-encoded 128-bit token.
func (g *TokenGenerator) Next() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Valid reports whether s has the exact shape of a generated token.
// Callers must check this before using client-supplied identifiers in paths.
func Valid(s string) bool {
	if len(s) != tokenLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
