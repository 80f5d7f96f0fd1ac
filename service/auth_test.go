package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth_SignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-key"), bcrypt.MinCost)
	require.NoError(t, err)
	tokenizer := &stubTokenizer{}

	auth, err := NewAuthService("batch-runner", string(hash), tokenizer, time.Hour)
	require.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		token, err := auth.SignIn("batch-runner", "s3cret-key")
		require.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.Equal(t, map[string]any{"sub": "batch-runner"}, tokenizer.claims)
		assert.Equal(t, time.Hour, tokenizer.ttl)
	})

	t.Run("Wrong key", func(t *testing.T) {
		_, err := auth.SignIn("batch-runner", "guess")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong client", func(t *testing.T) {
		_, err := auth.SignIn("someone-else", "s3cret-key")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestNewAuthService(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-key"), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = NewAuthService("", string(hash), &stubTokenizer{}, 0)
	assert.Error(t, err)
	_, err = NewAuthService("client", "not-a-hash", &stubTokenizer{}, 0)
	assert.Error(t, err)
	_, err = NewAuthService("client", string(hash), nil, 0)
	assert.Error(t, err)

	auth, err := NewAuthService("client", string(hash), &stubTokenizer{}, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultTokenTTL, auth.tokenTTL)
}

func TestHashAPIKey(t *testing.T) {
	t.Run("Weak key", func(t *testing.T) {
		_, err := HashAPIKey("password")
		assert.ErrorIs(t, err, ErrWeakAPIKey)
	})

	t.Run("Strong key", func(t *testing.T) {
		key := "vK7#qzP2!mW9xR4@tL6nJ8"
		hash, err := HashAPIKey(key)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)))
	})
}
