package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired session token")

// Claims carry the signed-in matric number. There is no account or password
// behind this: the token only pins the local identifier to the session.
type Claims struct {
	MatricNumber string `json:"matricNumber"`
	jwt.RegisteredClaims
}

// Tokens signs and validates session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttlMinutes int) *Tokens {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// TTL returns the session lifetime.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Generate creates a signed session token for a matric number.
func (t *Tokens) Generate(matric string) (string, error) {
	now := time.Now()
	claims := Claims{
		MatricNumber: matric,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   matric,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate parses a session token and returns its claims.
func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
