package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
	StatusFailed  PaymentStatus = "failed"
	StatusExpired PaymentStatus = "expired"
)

// IsTerminal reports whether no further transitions are allowed from the status
func (s PaymentStatus) IsTerminal() bool {
	return s != StatusPending
}

// LineItem is an add-on service line on a booking.
// Quantity is the number of hours, prices are canonical catalog prices
type LineItem struct {
	ServiceID    string      `json:"serviceId" bson:"service_id"`
	Name         string      `json:"name" bson:"name"`
	Quantity     int         `json:"quantity" bson:"quantity"`
	PricePerHour types.Cents `json:"pricePerHour" bson:"price_per_hour"`
}

// Customer holds the contact data collected at checkout
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Booking represents a studio reservation, possibly spanning several days
type Booking struct {
	ID        uuid.UUID
	Studio    string
	StartDate time.Time
	EndDate   time.Time
	StartTime types.TimeLabel
	EndTime   types.TimeLabel

	Items      []LineItem
	Subtotal   types.Cents
	StudioCost types.Cents
	Surcharge  types.Cents
	Total      types.Cents

	PaymentStatus     PaymentStatus
	CheckoutSessionID *string

	Customer Customer

	CreatedAt time.Time
	UpdatedAt time.Time
	PaidAt    *time.Time
}

// EffectiveEndDate returns EndDate, or StartDate when EndDate is not set
func (b *Booking) EffectiveEndDate() time.Time {
	if b.EndDate.IsZero() {
		return b.StartDate
	}
	return b.EndDate
}

// DurationMinutes returns the booked time from start to end across all days.
// ok is false when a time label does not parse
func (b *Booking) DurationMinutes() (minutes int, ok bool) {
	return spanMinutes(b.StartDate, b.EffectiveEndDate(), b.StartTime, b.EndTime)
}

func spanMinutes(startDate, endDate time.Time, startTime, endTime types.TimeLabel) (int, bool) {
	start, err := startTime.Minutes()
	if err != nil || startTime.IsUnavailable() {
		return 0, false
	}
	end, err := endTime.Minutes()
	if err != nil || endTime.IsUnavailable() {
		return 0, false
	}

	days := DaysBetween(startDate, endDate)
	return days*types.MinutesPerDay + end - start, true
}

// BookingsFilter narrows booking queries.
// Zero values mean "no restriction"
type BookingsFilter struct {
	Studio string

	// Overlap window: bookings whose [StartDate, EndDate] intersects [From, To]
	From *time.Time
	To   *time.Time

	Statuses []PaymentStatus

	// Pending bookings created before this moment are excluded (stale holds)
	PendingCreatedAfter *time.Time

	// Only bookings created strictly before this moment
	CreatedBefore *time.Time

	// Dashboard filters by booking start date
	Month *int
	Year  *int

	Limit  uint64
	Offset uint64
}
