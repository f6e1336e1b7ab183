package admin

import "time"

// TokenIssuer интерфейс выпуска токенов доступа
type TokenIssuer interface {
	GenerateAccessToken(username, role string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
