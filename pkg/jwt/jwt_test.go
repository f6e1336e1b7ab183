package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("secret", time.Hour, "studio-booking")

	token, expiresAt, err := svc.GenerateAccessToken("owner", RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewService("secret", time.Hour, "studio-booking")
	other := NewService("other", time.Hour, "studio-booking")

	token, _, err := issuer.GenerateAccessToken("owner", RoleAdmin)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongIssuer(t *testing.T) {
	issuer := NewService("secret", time.Hour, "someone-else")
	svc := NewService("secret", time.Hour, "studio-booking")

	token, _, err := issuer.GenerateAccessToken("owner", RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	svc := NewService("secret", time.Minute, "studio-booking")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateAccessToken("owner", RoleAdmin)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("secret", time.Hour, "studio-booking")
	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
