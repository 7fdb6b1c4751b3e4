// Package auth implements the stateless session token codec and password
// hashing used by the credential service and the HTTP access guard.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the owning user's id and email plus the
// standard issued-at and optional expiry claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenCodec signs and verifies HS256 session tokens. It is safe for
// concurrent use; the secret is read-only after construction.
type TokenCodec struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

// NewTokenCodec returns a codec signing with secretKey. A zero validity
// issues tokens without an exp claim, valid until the secret changes.
func NewTokenCodec(secretKey []byte, validity time.Duration) *TokenCodec {
	return &TokenCodec{secretKey: secretKey, validity: validity, now: time.Now}
}

// Encode signs a token for the given identity.
func (c *TokenCodec) Encode(userID, email string) (string, error) {
	now := c.now()
	registered := jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(now),
	}
	if c.validity > 0 {
		registered.ExpiresAt = jwt.NewNumericDate(now.Add(c.validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: registered,
		UserID:           userID,
		Email:            email,
	})

	return token.SignedString(c.secretKey)
}

// Decode verifies the signature, algorithm and expiry of tokenString and
// returns its claims. Every failure is reported as common.ErrInvalidToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID string
	Email  string
}

// Identity returns the caller identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email}
}
