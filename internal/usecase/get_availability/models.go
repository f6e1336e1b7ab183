package get_availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request модель запроса занятости студии
type Request struct {
	Studio string    // Название студии (без учета регистра)
	From   time.Time // Первая дата периода; нулевая = сегодня
	To     time.Time // Последняя дата периода включительно; нулевая = From
}

// Response занятость студии по дням
type Response struct {
	Studio            string // Каноническое название из каталога
	From              time.Time
	To                time.Time
	OpeningTime       types.TimeLabel
	ClosingTime       types.TimeLabel
	StepMinutes       int
	MinBookingMinutes int
	Advanced          bool // Период сдвинут на завтра, т.к. студия сегодня уже закрыта
	Days              []Day
}

// Day слоты одного дня
type Day struct {
	Date    time.Time
	Slots   []types.TimeLabel // Все слоты дня
	Blocked []types.TimeLabel // Занятые слоты
	Free    []types.TimeLabel // Свободные слоты
}
