package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/dgrijalva/jwt-go"
)

var _ i.Tokenizer = &JWT{}

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("token issued by someone else")
)

// JWT signs and verifies HS256 access tokens stamped with an issuer.
type JWT struct {
	secretKey []byte
	issuer    string
	now       func() time.Time
}

// NewJWT creates a JWT tokenizer.
func NewJWT(secretKey, issuer string) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("jwt: empty secret key")
	}
	return &JWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       time.Now,
	}, nil
}

// Generate implements i.Tokenizer.
// The standard iss, iat and exp claims override any caller supplied values.
func (s *JWT) Generate(claims map[string]any, expTime time.Duration) (string, error) {
	now := s.now().UTC()
	jwtClaims := jwt.MapClaims{}
	for key, val := range claims {
		jwtClaims[key] = val
	}
	jwtClaims["iss"] = s.issuer
	jwtClaims["iat"] = now.Unix()
	jwtClaims["exp"] = now.Add(expTime).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString(s.secretKey)
}

// Decode implements i.Tokenizer.
func (s *JWT) Decode(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, s.signingKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidIssuer
	}
	return claims, nil
}

func (s *JWT) signingKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secretKey, nil
}
