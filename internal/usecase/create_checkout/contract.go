package create_checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	LockStudio(ctx context.Context, studio string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus) error
	SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string) error
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	Get(ctx context.Context) (*domain.Catalog, error)
}

// PaymentsClient интерфейс клиента платежного провайдера
type PaymentsClient interface {
	CreateCheckoutSession(ctx context.Context, req *payments.CheckoutRequest) (*payments.Session, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	IncCheckout(result string)
	IncValidationRejection(reason string)
	IncPriceGuardRejection(reason string)
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
