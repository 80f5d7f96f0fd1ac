package i

import (
	"time"
)

// Tokenizer defines methods for generating and decoding access tokens.
type Tokenizer interface {
	// Generate creates a token with the given claims that expires after expTime.
	Generate(claims map[string]any, expTime time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	Decode(token string) (map[string]any, error)
}
