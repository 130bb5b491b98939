// Package auth issues and verifies API tokens and guards routes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("the token is invalid or expired")
	ErrMissingToken       = errors.New("you must be authenticated to access this resource")
	ErrWrongUser          = errors.New("you are not allowed to access resources of other users")
	ErrTooManyRequests    = errors.New("too many requests, please slow down")
)

// TokenTTL is how long issued tokens are valid.
const TokenTTL = 24 * time.Hour

// Claims are the claims of an API token.
type Claims struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Tokens issues and parses HS256 signed tokens.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue returns a signed token for the user.
func (t *Tokens) Issue(id uuid.UUID, username string) (string, error) {
	now := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})

	return token.SignedString(t.secret)
}

// Parse verifies a token and returns its claims.
func (t *Tokens) Parse(token string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if claims.ID == uuid.Nil {
		return Claims{}, fmt.Errorf("%w: no user id", ErrInvalidToken)
	}

	return claims, nil
}

// HashPassword hashes a password with bcrypt.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword reports ErrInvalidCredentials if the password
// does not match the hash.
func ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}
