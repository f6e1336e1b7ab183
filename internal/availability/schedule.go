package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректной политике расписания
	ErrInvalidSchedule = errors.New("availability: invalid schedule")
)

// Schedule политика расписания студии: часы работы, шаг сетки, буфер между бронированиями
// и минимальная длительность по умолчанию. Все значения в минутах от полуночи
type Schedule struct {
	OpenMinutes              int
	CloseMinutes             int
	StepMinutes              int
	BufferMinutes            int
	DefaultMinBookingMinutes int
	// Часовой пояс студии; nil = UTC
	Location *time.Location
}

// DefaultSchedule 8:00 AM - 9:00 PM, шаг 30 минут, буфер 30 минут, минимум 1 час
func DefaultSchedule() Schedule {
	return Schedule{
		OpenMinutes:              8 * 60,
		CloseMinutes:             21 * 60,
		StepMinutes:              domain.DefaultStepMinutes,
		BufferMinutes:            domain.DefaultBufferMinutes,
		DefaultMinBookingMinutes: domain.DefaultMinBookingMinutes,
		Location:                 time.UTC,
	}
}

// NewSchedule собирает политику из меток времени и проверяет её
func NewSchedule(opening, closing string, step, buffer, minBooking int, loc *time.Location) (Schedule, error) {
	openLabel, err := types.ParseTimeLabel(opening)
	if err != nil || openLabel.IsUnavailable() {
		return Schedule{}, fmt.Errorf("%w: opening time %q", ErrInvalidSchedule, opening)
	}
	closeLabel, err := types.ParseTimeLabel(closing)
	if err != nil || closeLabel.IsUnavailable() {
		return Schedule{}, fmt.Errorf("%w: closing time %q", ErrInvalidSchedule, closing)
	}

	open, _ := openLabel.Minutes()
	closeM, _ := closeLabel.Minutes()

	s := Schedule{
		OpenMinutes:              open,
		CloseMinutes:             closeM,
		StepMinutes:              step,
		BufferMinutes:            buffer,
		DefaultMinBookingMinutes: minBooking,
		Location:                 loc,
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate проверяет согласованность политики
func (s Schedule) Validate() error {
	switch {
	case s.StepMinutes <= 0:
		return fmt.Errorf("%w: step must be positive", ErrInvalidSchedule)
	case s.OpenMinutes < 0 || s.CloseMinutes >= types.MinutesPerDay:
		return fmt.Errorf("%w: hours out of day range", ErrInvalidSchedule)
	case s.CloseMinutes <= s.OpenMinutes:
		return fmt.Errorf("%w: closing must be after opening", ErrInvalidSchedule)
	case (s.CloseMinutes-s.OpenMinutes)%s.StepMinutes != 0:
		return fmt.Errorf("%w: working hours must be a multiple of the step", ErrInvalidSchedule)
	case s.BufferMinutes < 0:
		return fmt.Errorf("%w: buffer must not be negative", ErrInvalidSchedule)
	case s.DefaultMinBookingMinutes < 0:
		return fmt.Errorf("%w: minimum booking must not be negative", ErrInvalidSchedule)
	}
	return nil
}

// OpeningTime метка открытия
func (s Schedule) OpeningTime() types.TimeLabel {
	return types.FromMinutes(s.OpenMinutes)
}

// ClosingTime метка закрытия
func (s Schedule) ClosingTime() types.TimeLabel {
	return types.FromMinutes(s.CloseMinutes)
}

// DailySlots каталог слотов дня: от открытия до закрытия включительно
func (s Schedule) DailySlots() []types.TimeLabel {
	return GenerateDailySlots(s.OpenMinutes, s.CloseMinutes, s.StepMinutes)
}

// MinBookingMinutes минимальная длительность для студии: override из каталога или значение по умолчанию
func (s Schedule) MinBookingMinutes(studio *domain.Studio) int {
	if studio != nil && studio.MinBookingMinutes > 0 {
		return studio.MinBookingMinutes
	}
	return s.DefaultMinBookingMinutes
}

// In переводит t в часовой пояс студии
func (s Schedule) In(t time.Time) time.Time {
	if s.Location == nil {
		return t.UTC()
	}
	return t.In(s.Location)
}

// GenerateDailySlots возвращает метки от open до close включительно с шагом step.
// Длина (close-open)/step + 1, метки строго возрастают
func GenerateDailySlots(open, close, step int) []types.TimeLabel {
	if step <= 0 || close < open {
		return []types.TimeLabel{}
	}

	slots := make([]types.TimeLabel, 0, (close-open)/step+1)
	for m := open; m <= close; m += step {
		slots = append(slots, types.FromMinutes(m))
	}
	return slots
}

func (s Schedule) slotMinutes() []int {
	if s.StepMinutes <= 0 {
		return nil
	}
	out := make([]int, 0, (s.CloseMinutes-s.OpenMinutes)/s.StepMinutes+1)
	for m := s.OpenMinutes; m <= s.CloseMinutes; m += s.StepMinutes {
		out = append(out, m)
	}
	return out
}
