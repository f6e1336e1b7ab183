package admin

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("admin service: invalid credentials")

	// ErrAdminDisabled возвращается, если пароль администратора не настроен
	ErrAdminDisabled = errors.New("admin service: admin account is not configured")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin service: internal error")
)
