// Package credential encodes and decodes the dashboard's session credential.
//
// The credential is a three-segment, JWT-shaped string whose signature is a
// placeholder derived from the user id. It is never verified and provides no
// integrity or confidentiality: anyone can mint one. It exists so the session
// lifecycle (issue, persist, expire) can be exercised end to end and must be
// replaced by a server-issued, verifiable token before real deployment.
package credential

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// DefaultTTL is how long an issued credential stays valid
const DefaultTTL = time.Hour

// Claims is the credential payload. Exp is an absolute epoch in milliseconds.
type Claims struct {
	UserID string `json:"userId"`
	Exp    int64  `json:"exp"`
}

// ExpiresAt returns the expiry as a time
func (c *Claims) ExpiresAt() time.Time {
	return time.UnixMilli(c.Exp)
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(c.ExpiresAt()), nil
}

func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error)  { return nil, nil }
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *Claims) GetIssuer() (string, error)              { return "", nil }
func (c *Claims) GetSubject() (string, error)             { return c.UserID, nil }
func (c *Claims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

// placeholderMethod writes "mock-signature-<userId>" as the signature bytes.
// The header still advertises HS256 so the format matches the dashboard's.
type placeholderMethod struct{}

func (placeholderMethod) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (placeholderMethod) Sign(_ string, key interface{}) ([]byte, error) {
	userID, ok := key.(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	return []byte("mock-signature-" + userID), nil
}

func (placeholderMethod) Verify(string, []byte, interface{}) error {
	return jwt.ErrTokenUnverifiable
}

// Codec issues and decodes credentials
type Codec struct {
	ttl time.Duration
	now func() time.Time
}

// NewCodec creates a codec. A zero ttl uses DefaultTTL; a nil clock uses time.Now.
func NewCodec(ttl time.Duration, now func() time.Time) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{ttl: ttl, now: now}
}

// Issue generates a credential for userID that expires after the codec TTL
func (c *Codec) Issue(userID string) (string, time.Time, error) {
	expiresAt := c.now().Add(c.ttl)
	claims := &Claims{
		UserID: userID,
		Exp:    expiresAt.UnixMilli(),
	}

	token := jwt.NewWithClaims(placeholderMethod{}, claims)
	signed, err := token.SignedString(userID)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode parses a credential without verifying its signature and checks expiry
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.Exp <= c.now().UnixMilli() {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Valid reports whether tokenString decodes and has not expired
func (c *Codec) Valid(tokenString string) bool {
	_, err := c.Decode(tokenString)
	return err == nil
}
