package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

// SignAccessToken issues an HS256 access token. Tokens are normally issued by
// the auth service; this is used by tooling and tests.
func SignAccessToken(subject, role string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
