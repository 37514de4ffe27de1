// ABOUTME: JWT session tokens for authenticating write actions
// ABOUTME: Uses HS256 signing with configurable secret

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// operatorSubject is the sole principal; the system has exactly one operator.
const operatorSubject = "operator"

// Issuer mints and checks HS256 signed session tokens. A token is returned
// by a successful verify or bootstrap and required by privileged actions.
type Issuer struct {
	secret []byte
}

// NewIssuer creates a token issuer with the given secret.
func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Issue creates a new token valid for the given duration.
func (i *Issuer) Issue(expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": operatorSubject,
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Check validates the token signature, expiry and subject.
func (i *Issuer) Check(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != operatorSubject {
		return ErrInvalidToken
	}

	return nil
}
