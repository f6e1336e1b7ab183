package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-StudioBooking/pkg/jwt"
)

// Service вход администратора в панель
type Service struct {
	username     string
	passwordHash []byte
	tokens       TokenIssuer
	logger       Logger
}

// NewService создает сервис. passwordHash - bcrypt хэш пароля администратора
func NewService(username, passwordHash string, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       logger,
	}
}

// Login проверяет учетные данные и выпускает JWT с ролью admin
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	s.logger.Info("Login: attempt for username=%s", req.Username)

	if len(s.passwordHash) == 0 {
		s.logger.Error("Login: admin password hash is not configured")
		return nil, ErrAdminDisabled
	}

	// Хэш сверяем всегда, даже при неверном логине
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.logger.Error("Login: failed to compare password hash: %v", err)
		return nil, fmt.Errorf("%w: compare password hash: %v", ErrInternal, err)
	}
	if !userOK || err != nil {
		s.logger.Warn("Login: invalid credentials for username=%s", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(s.username, jwt.RoleAdmin)
	if err != nil {
		s.logger.Error("Login: failed to issue token: %v", err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin %s logged in, token expires at %s", s.username, expiresAt.Format("2006-01-02 15:04:05"))

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
