package domain

import "time"

// Default schedule policy
const (
	DefaultOpeningTime       = "8:00 AM"
	DefaultClosingTime       = "9:00 PM"
	DefaultStepMinutes       = 30
	DefaultBufferMinutes     = 30
	DefaultMinBookingMinutes = 60
	DefaultPendingTTLMinutes = 30
)

// Business validation constants
const (
	MaxItemQuantity      = 24
	MaxCustomerNameLen   = 200
	MaxBookingSpanDays   = 31
	MaxStudioNameLength  = 100
	MaxServiceNameLength = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses whose bookings occupy slots
// (pending ones only while they are fresh)
var BlockingStatuses = []PaymentStatus{
	StatusPending,
	StatusPaid,
}

// AllStatuses every known payment status
var AllStatuses = []PaymentStatus{
	StatusPending,
	StatusPaid,
	StatusFailed,
	StatusExpired,
}

// ParseDate parses YYYY-MM-DD into a UTC midnight time
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// DateOf truncates t to its civil date in t's location, returned as UTC midnight
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b (civil dates)
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
