// Package auth verifies and issues the signed bearer tokens that carry a caller's identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"diarybook/src/core/domain"
	"diarybook/src/core/ports"
)

// Claims is the token payload: the registered claims plus the numeric user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"userId"`
}

var _ ports.TokenVerifier = (*JWTVerifier)(nil)

// JWTVerifier checks HS256 tokens against a shared secret. It is safe for concurrent use.
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewJWTVerifier creates a verifier for tokens signed with secret.
func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret, now: time.Now}
}

// WithClock replaces the time source used for expiry checks.
func (v *JWTVerifier) WithClock(now func() time.Time) *JWTVerifier {
	v.now = now
	return v
}

// Verify returns the identity carried by token.
// Expired tokens yield domain.ErrTokenExpired; anything else that fails yields domain.ErrInvalidToken.
func (v *JWTVerifier) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID <= 0 {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: claims.UserID}, nil
}

// Issuer mints tokens in the format JWTVerifier accepts.
// Production tokens come from the auth subsystem; this is used by tests and local tooling.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer whose tokens expire after ttl.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for iat/exp.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue signs a token for userID.
func (i *Issuer) Issue(userID int64) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
