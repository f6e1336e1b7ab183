package verify_payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) error
}

// PaymentsClient интерфейс клиента платежного провайдера
type PaymentsClient interface {
	RetrieveSession(ctx context.Context, sessionID string) (*payments.Session, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncPaymentVerified(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
