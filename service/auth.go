package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

var _ i.Authenticator = &Auth{}

const (
	apiKeyHashCost  = 12
	minAPIKeyScore  = 3
	defaultTokenTTL = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid client id or api key")
	ErrWeakAPIKey         = errors.New("api key is too weak")
)

// Auth exchanges the configured API client credentials for access tokens.
type Auth struct {
	clientID   string
	apiKeyHash []byte
	tokenizer  i.Tokenizer
	tokenTTL   time.Duration
}

// NewAuthService creates an Auth for a single API client.
// apiKeyHash is a bcrypt hash as produced by HashAPIKey.
func NewAuthService(clientID, apiKeyHash string, tokenizer i.Tokenizer, tokenTTL time.Duration) (*Auth, error) {
	if clientID == "" {
		return nil, errors.New("auth service: empty client id")
	}
	if _, err := bcrypt.Cost([]byte(apiKeyHash)); err != nil {
		return nil, fmt.Errorf("auth service: api key hash: %w", err)
	}
	if tokenizer == nil {
		return nil, errors.New("auth service: nil tokenizer")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &Auth{
		clientID:   clientID,
		apiKeyHash: []byte(apiKeyHash),
		tokenizer:  tokenizer,
		tokenTTL:   tokenTTL,
	}, nil
}

// SignIn implements i.Authenticator.
func (a *Auth) SignIn(clientID, apiKey string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(clientID), []byte(a.clientID)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.apiKeyHash, []byte(apiKey)); err != nil {
		return "", ErrInvalidCredentials
	}

	return a.tokenizer.Generate(map[string]any{
		"sub": a.clientID,
	}, a.tokenTTL)
}

// HashAPIKey rejects guessable keys and returns the bcrypt hash of the rest.
func HashAPIKey(apiKey string) (string, error) {
	strength := zxcvbn.PasswordStrength(apiKey, nil)
	if strength.Score < minAPIKeyScore {
		return "", fmt.Errorf("%w: score %d, want at least %d", ErrWeakAPIKey, strength.Score, minAPIKeyScore)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), apiKeyHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
