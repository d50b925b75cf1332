// Package token implements the signed-token codec shared by every service.
//
// Tokens are HS256 JWTs: three dot-separated base64url segments carrying a
// fixed claim set {sub, roles, iat, exp}. Any service holding the shared
// signing secret can verify them; the codec keeps no state beyond the secret
// and the issuance TTL, so encoding and decoding are safe to call from any
// number of goroutines.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

var ErrMalformed = errors.New("token malformed")
var ErrInvalidSignature = errors.New("token signature invalid")
var ErrExpired = errors.New("token expired")

// Claims is the decoded claim set. Roles are a point-in-time snapshot taken
// at issuance; they never track later role changes on the user.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type wireClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec encodes and verifies tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls
// back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the codec's time source. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs a token for subject carrying the given role snapshot.
// ExpiresAt is always IssuedAt + TTL.
func (c *Codec) Encode(subject string, roles []string) (string, *Claims, error) {
	iat := c.now().UTC().Truncate(time.Second)
	exp := iat.Add(c.ttl)

	wc := wireClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wc).SignedString(c.secret)
	if err != nil {
		return "", nil, err
	}
	return raw, &Claims{Subject: subject, Roles: roles, IssuedAt: iat, ExpiresAt: exp}, nil
}

// Decode verifies raw and returns its claims. Failures are exactly one of
// ErrMalformed (cannot parse), ErrInvalidSignature (HMAC mismatch or wrong
// algorithm; the comparison inside jwt/v5 is constant-time) or ErrExpired.
func (c *Codec) Decode(raw string) (*Claims, error) {
	var wc wireClaims
	_, err := jwt.ParseWithClaims(raw, &wc,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}

	claims := &Claims{
		Subject: wc.Subject,
		Roles:   wc.Roles,
	}
	if wc.IssuedAt != nil {
		claims.IssuedAt = wc.IssuedAt.Time
	}
	if wc.ExpiresAt != nil {
		claims.ExpiresAt = wc.ExpiresAt.Time
	}
	return claims, nil
}
