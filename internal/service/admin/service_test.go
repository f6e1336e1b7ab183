package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-StudioBooking/pkg/jwt"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginIssuesAdminToken(t *testing.T) {
	tokens := jwt.NewService("secret", time.Hour, "studio-booking")
	s := NewService("admin", hash(t, "s3cret"), tokens, logger.NewNop())

	resp, err := s.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	tokens := jwt.NewService("secret", time.Hour, "studio-booking")
	s := NewService("admin", hash(t, "s3cret"), tokens, logger.NewNop())

	_, err := s.Login(context.Background(), &LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), &LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	s := NewService("admin", "", jwt.NewService("secret", time.Hour, "x"), logger.NewNop())

	_, err := s.Login(context.Background(), &LoginRequest{Username: "admin", Password: "anything"})
	assert.ErrorIs(t, err, ErrAdminDisabled)
}

func TestLoginMalformedHash(t *testing.T) {
	s := NewService("admin", "not-a-bcrypt-hash", jwt.NewService("secret", time.Hour, "x"), logger.NewNop())

	_, err := s.Login(context.Background(), &LoginRequest{Username: "admin", Password: "anything"})
	assert.ErrorIs(t, err, ErrInternal)
}
