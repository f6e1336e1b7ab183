package expire_pending

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) error
	ExpirePending(ctx context.Context, ids []uuid.UUID, createdBefore time.Time) (int64, error)
}

// PaymentsClient интерфейс платежного провайдера
type PaymentsClient interface {
	RetrieveSession(ctx context.Context, sessionID string) (*payments.Session, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	AddPendingExpired(n int64)
	IncPaymentVerified(status string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
