package create_checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request модель запроса на оформление бронирования и оплату
type Request struct {
	Studio    string
	StartDate time.Time
	EndDate   time.Time // Нулевая = StartDate
	StartTime types.TimeLabel
	EndTime   types.TimeLabel

	Items []Item

	// Суммы, посчитанные клиентом, сверяются с каталогом
	Subtotal   types.Cents
	StudioCost types.Cents
	Total      types.Cents

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Item позиция доп. услуги: ID из каталога и количество часов
type Item struct {
	ServiceID string
	Quantity  int
}

// Response созданное бронирование и ссылка на оплату
type Response struct {
	BookingID   uuid.UUID
	SessionID   string
	CheckoutURL string
	Studio      string
	Subtotal    types.Cents
	StudioCost  types.Cents
	Surcharge   types.Cents
	Total       types.Cents
	ExpiresAt   time.Time
}
