package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blogmint/blogmint/internal/config"
)

// ErrExpired is returned by Verify when the token's signature is valid but
// its expiry instant has passed.
var ErrExpired = errors.New("token expired")

// Claims is the signed payload carried by every session token.
type Claims struct {
	AuthorID string `json:"authorId"`
	jwt.RegisteredClaims
}

// Generate creates a signed HS256 session token for the author, valid for
// cfg.JWT.TokenTTL from now.
func Generate(cfg *config.Config, authorID string) (string, error) {
	now := time.Now()
	claims := Claims{
		AuthorID: authorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWT.TokenTTL)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Verify checks the token signature with built-in claim validation disabled,
// then compares the expiry instant against the current time. Expiry gets its
// own sentinel so the caller can distinguish "session expired" (401) from a
// bad or forged token.
func Verify(cfg *config.Config, raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return &claims, nil
}
