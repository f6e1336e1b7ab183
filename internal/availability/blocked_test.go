package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func booking(t *testing.T, startDate, startTime, endDate, endTime string) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		Studio:    "Studio A",
		StartDate: date(t, startDate),
		StartTime: types.TimeLabel(startTime),
		EndTime:   types.TimeLabel(endTime),
	}
	if endDate != "" {
		b.EndDate = date(t, endDate)
	}
	return b
}

func labels(ss ...string) []types.TimeLabel {
	out := make([]types.TimeLabel, len(ss))
	for i, s := range ss {
		out[i] = types.TimeLabel(s)
	}
	return out
}

func TestGenerateDailySlots(t *testing.T) {
	s := DefaultSchedule()
	slots := s.DailySlots()

	require.Len(t, slots, (s.CloseMinutes-s.OpenMinutes)/s.StepMinutes+1)
	assert.Equal(t, types.TimeLabel("8:00 AM"), slots[0])
	assert.Equal(t, types.TimeLabel("9:00 PM"), slots[len(slots)-1])

	prev := -1
	for _, l := range slots {
		m, err := l.Minutes()
		require.NoError(t, err)
		assert.Greater(t, m, prev)
		prev = m
	}
}

func TestGenerateDailySlotsDegenerate(t *testing.T) {
	assert.Empty(t, GenerateDailySlots(600, 480, 30))
	assert.Empty(t, GenerateDailySlots(480, 600, 0))
	assert.Equal(t, labels("8:00 AM"), GenerateDailySlots(480, 480, 30))
}

func TestComputeBlockedSingleDay(t *testing.T) {
	s := DefaultSchedule()
	b := booking(t, "2025-06-01", "2:00 PM", "", "4:00 PM")

	blocked := ComputeBlockedTimesByDate([]*domain.Booking{b}, s)

	day := date(t, "2025-06-01")
	assert.Equal(t, labels("2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM"), blocked.Labels(day))
	assert.False(t, blocked.IsLabelBlocked(day, "1:30 PM"))
	assert.False(t, blocked.IsLabelBlocked(day, "4:30 PM"))
	assert.Empty(t, blocked.Labels(date(t, "2025-06-02")))
}

func TestComputeBlockedMultiDay(t *testing.T) {
	s := DefaultSchedule()
	b := booking(t, "2025-06-01", "9:00 PM", "2025-06-03", "10:00 AM")

	blocked := ComputeBlockedTimesByDate([]*domain.Booking{b}, s)

	// Первый день: только хвост начиная с 9:00 PM
	assert.Equal(t, labels("9:00 PM"), blocked.Labels(date(t, "2025-06-01")))

	// Промежуточный день занят полностью
	assert.Equal(t, s.DailySlots(), blocked.Labels(date(t, "2025-06-02")))

	// Последний день: от открытия до 10:00 AM плюс буфер
	assert.Equal(t, labels("8:00 AM", "8:30 AM", "9:00 AM", "9:30 AM", "10:00 AM"), blocked.Labels(date(t, "2025-06-03")))
	assert.False(t, blocked.IsLabelBlocked(date(t, "2025-06-03"), "10:30 AM"))

	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, blocked.Dates())
}

func TestComputeBlockedSentinelAndGarbage(t *testing.T) {
	s := DefaultSchedule()

	// Неизвестное начало: на первом дне ничего не блокируется
	unknownStart := booking(t, "2025-06-01", "---:--", "", "4:00 PM")
	assert.Empty(t, ComputeBlockedTimesByDate([]*domain.Booking{unknownStart}, s).Labels(date(t, "2025-06-01")))

	// Неизвестный конец: блокируется все от начала
	unknownEnd := booking(t, "2025-06-01", "8:00 PM", "", "garbage")
	assert.Equal(t, labels("8:00 PM", "8:30 PM", "9:00 PM"),
		ComputeBlockedTimesByDate([]*domain.Booking{unknownEnd}, s).Labels(date(t, "2025-06-01")))
}

func TestComputeBlockedSkipsInvertedDates(t *testing.T) {
	s := DefaultSchedule()
	b := booking(t, "2025-06-03", "10:00 AM", "2025-06-01", "11:00 AM")

	assert.Empty(t, ComputeBlockedTimesByDate([]*domain.Booking{b}, s))
}

func TestComputeBlockedIdempotent(t *testing.T) {
	s := DefaultSchedule()
	bookings := []*domain.Booking{
		booking(t, "2025-06-01", "10:00 AM", "", "12:00 PM"),
		booking(t, "2025-06-01", "3:00 PM", "2025-06-02", "9:00 AM"),
	}

	first := ComputeBlockedTimesByDate(bookings, s)
	second := ComputeBlockedTimesByDate(bookings, s)
	assert.Equal(t, first, second)
}

func TestComputeBlockedNoBookings(t *testing.T) {
	assert.Empty(t, ComputeBlockedTimesByDate(nil, DefaultSchedule()))
}

func TestDays(t *testing.T) {
	days := Days(date(t, "2025-06-30"), date(t, "2025-07-02"))
	require.Len(t, days, 3)
	assert.Equal(t, "2025-07-01", days[1].Format(domain.DateFormat))

	assert.Empty(t, Days(date(t, "2025-07-02"), date(t, "2025-06-30")))
}

func TestDayAvailability(t *testing.T) {
	s := DefaultSchedule()
	b := booking(t, "2025-06-01", "8:00 AM", "", "9:00 AM")
	blocked := ComputeBlockedTimesByDate([]*domain.Booking{b}, s)

	day := s.DayAvailability(blocked, date(t, "2025-06-01"))
	assert.Len(t, day.Slots, 27)
	assert.Equal(t, labels("8:00 AM", "8:30 AM", "9:00 AM"), day.Blocked)
	assert.Len(t, day.FreeSlots(), 24)
	assert.False(t, day.IsFullyBooked())
}

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule("8:00 AM", "9:00 PM", 30, 30, 60, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 480, s.OpenMinutes)
	assert.Equal(t, 1260, s.CloseMinutes)

	_, err = NewSchedule("9:00 PM", "8:00 AM", 30, 30, 60, nil)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = NewSchedule("8:00 AM", "9:00 PM", 45, 30, 60, nil)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	_, err = NewSchedule("8", "9:00 PM", 30, 30, 60, nil)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}
