package payments

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Названия служебных позиций в чеке
const (
	StudioRentalName = "Studio Rental"
	SurchargeName    = "Service Surcharge"

	// MetadataBookingID ключ метаданных сессии с ID бронирования
	MetadataBookingID = "bookingId"

	// MinSessionTTL Stripe не принимает expires_at раньше чем через 30 минут
	MinSessionTTL = 30 * time.Minute
)

// CheckoutRequest данные для создания checkout сессии
type CheckoutRequest struct {
	BookingID     string
	Studio        string
	Period        string
	Items         []domain.LineItem
	StudioCost    types.Cents
	Surcharge     types.Cents
	CustomerEmail string
	ExpiresAt     time.Time
}

// Session checkout сессия Stripe в объеме, нужном сервису
type Session struct {
	ID            string
	URL           string
	Status        string
	PaymentStatus string
	BookingID     string
	AmountTotal   types.Cents
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// IsPaid true, если оплата по сессии прошла
func (s *Session) IsPaid() bool {
	return s.PaymentStatus == "paid"
}

// IsExpired true, если сессия истекла без оплаты
func (s *Session) IsExpired() bool {
	return s.Status == "expired"
}

// IsOpen true, если по сессии еще можно оплатить
func (s *Session) IsOpen() bool {
	return s.Status == "open"
}
