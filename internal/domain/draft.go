package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// DraftBooking is the proposed booking a customer is composing.
// It is a value: helpers return modified copies
type DraftBooking struct {
	Studio    string
	StartDate time.Time
	EndDate   time.Time
	StartTime types.TimeLabel
	EndTime   types.TimeLabel
}

// EffectiveEndDate returns EndDate, or StartDate when EndDate is not set
func (d DraftBooking) EffectiveEndDate() time.Time {
	if d.EndDate.IsZero() {
		return d.StartDate
	}
	return d.EndDate
}

// DurationMinutes returns the length from start to end, or 0 when a time label is missing or invalid
func (d DraftBooking) DurationMinutes() int {
	minutes, ok := spanMinutes(d.StartDate, d.EffectiveEndDate(), d.StartTime, d.EndTime)
	if !ok {
		return 0
	}
	return minutes
}

// WithStart returns a copy with a new start date and time
func (d DraftBooking) WithStart(date time.Time, label types.TimeLabel) DraftBooking {
	d.StartDate = date
	d.StartTime = label
	return d
}

// WithEndDate returns a copy with a new end date
func (d DraftBooking) WithEndDate(date time.Time) DraftBooking {
	d.EndDate = date
	return d
}
