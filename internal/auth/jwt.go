// Package auth inspects bearer tokens issued by the event store.
//
// The client never verifies signatures: the store is the authority on
// authorization. Claims are decoded only to show who is logged in and when
// the credential is due to expire.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the admin id the store puts in tokens.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"id,omitempty"`
}

// Subject returns the admin id, falling back to the registered "sub" claim.
func (c *Claims) Subject() string {
	if c.AdminID != "" {
		return c.AdminID
	}
	return c.RegisteredClaims.Subject
}

// Expiry returns the expiry time, or the zero time when the token has none.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Inspect decodes the claims of a JWT without verifying it.
// Tokens that are not JWTs yield common.ErrInvalidToken.
func Inspect(token string) (*Claims, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// GenerateToken signs an HS256 token for adminID. The client does not issue
// credentials; stub servers in tests and local tooling do.
func GenerateToken(adminID string, secretKey []byte, validity time.Duration) (string, error) {
	if adminID == "" {
		return "", errors.New("empty admin id")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AdminID: adminID,
	})
	return token.SignedString(secretKey)
}
