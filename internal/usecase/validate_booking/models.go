package validate_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request черновик бронирования. Пустые поля допустимы: о них сообщит валидатор
type Request struct {
	Studio    string
	StartDate time.Time
	EndDate   time.Time // Нулевая = StartDate
	StartTime types.TimeLabel
	EndTime   types.TimeLabel
}

// Response результат проверки черновика
type Response struct {
	Valid   bool
	Reasons []availability.Reason

	// Черновик после автопереноса (если студия сегодня уже закрыта)
	Studio    string
	StartDate time.Time
	EndDate   time.Time
	StartTime types.TimeLabel
	EndTime   types.TimeLabel
	Advanced  bool

	// Заполняются только для допустимого черновика
	DurationMinutes int
	StudioCost      types.Cents
}
