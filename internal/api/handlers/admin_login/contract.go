package admin_login

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/admin"
)

type AdminService interface {
	Login(ctx context.Context, req *admin.LoginRequest) (*admin.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
