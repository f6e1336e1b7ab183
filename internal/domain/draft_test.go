package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func TestDraftBookingDurationMinutes(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		draft DraftBooking
		want  int
	}{
		{
			name:  "same day",
			draft: DraftBooking{StartDate: day, StartTime: "2:00 PM", EndTime: "4:00 PM"},
			want:  120,
		},
		{
			name:  "multi day",
			draft: DraftBooking{StartDate: day, EndDate: day.AddDate(0, 0, 2), StartTime: "9:00 PM", EndTime: "10:00 AM"},
			want:  2*types.MinutesPerDay - 11*60,
		},
		{
			name:  "missing end time",
			draft: DraftBooking{StartDate: day, StartTime: "2:00 PM"},
			want:  0,
		},
		{
			name:  "sentinel label",
			draft: DraftBooking{StartDate: day, StartTime: types.Unavailable, EndTime: "4:00 PM"},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.DurationMinutes())
		})
	}
}

func TestDraftBookingDurationMatchesBooking(t *testing.T) {
	d := DraftBooking{
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "8:00 PM",
		EndTime:   "9:00 AM",
	}
	b := Booking{StartDate: d.StartDate, EndDate: d.EndDate, StartTime: d.StartTime, EndTime: d.EndTime}

	minutes, ok := b.DurationMinutes()
	assert.True(t, ok)
	assert.Equal(t, minutes, d.DurationMinutes())
	assert.Equal(t, 13*60, minutes)
}
