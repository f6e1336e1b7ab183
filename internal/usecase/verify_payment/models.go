package verify_payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request входные данные для проверки оплаты
type Request struct {
	SessionID string
}

// Response результат проверки оплаты
type Response struct {
	BookingID     uuid.UUID
	SessionID     string
	PaymentStatus domain.PaymentStatus
	// Paid true, если бронирование оплачено (в том числе раньше)
	Paid bool
	// AlreadyProcessed true, если статус уже был финальным до этого вызова
	AlreadyProcessed bool

	Studio    string
	StartDate time.Time
	EndDate   time.Time
	StartTime types.TimeLabel
	EndTime   types.TimeLabel
	Total     types.Cents
	PaidAt    *time.Time
}
