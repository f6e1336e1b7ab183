package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/pkg/jwt"
)

type contextKey string

const (
	adminUsernameKey contextKey = "admin_username"
)

// TokenValidator проверяет токен доступа
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*jwt.Claims, error)
}

// Logger интерфейс логгера middleware
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает только запросы с валидным Bearer токеном роли admin
func AdminAuth(tokens TokenValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.RespondUnauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				handlers.RespondUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					handlers.RespondUnauthorized(w, "token expired")
				} else {
					logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, "invalid token")
				}
				return
			}

			if claims.Role != jwt.RoleAdmin {
				logger.Warn("%s %s - Forbidden for role=%s", r.Method, r.URL.Path, claims.Role)
				handlers.RespondForbidden(w, "insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), adminUsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUsername имя администратора из контекста запроса
func GetAdminUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(adminUsernameKey).(string)
	return username, ok && username != ""
}
