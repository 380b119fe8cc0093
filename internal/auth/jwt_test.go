package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateToken_SignedHS256(t *testing.T) {
	tok, err := GenerateToken("admin1", secret, time.Hour)
	require.NoError(t, err)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin1", claims.Subject())
}

func TestGenerateToken_Expired(t *testing.T) {
	tok, err := GenerateToken("admin1", secret, -time.Minute)
	require.NoError(t, err)

	c, err := Inspect(tok)
	require.NoError(t, err, "inspection ignores expiry")
	assert.True(t, c.Expiry().Before(time.Now()))
}

func TestGenerateToken_EmptyID(t *testing.T) {
	_, err := GenerateToken("", secret, time.Hour)
	require.Error(t, err)
}

func TestInspect_DecodesWithoutSecret(t *testing.T) {
	tok, err := GenerateToken("admin1", secret, time.Hour)
	require.NoError(t, err)

	c, err := Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin1", c.Subject())
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.Expiry(), 5*time.Second)
}

func TestInspect_OpaqueToken(t *testing.T) {
	_, err := Inspect("T1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))

	_, err = Inspect("")
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestClaims_ZeroExpiry(t *testing.T) {
	c := &Claims{}
	assert.True(t, c.Expiry().IsZero())
	assert.Empty(t, c.Subject())
}
