package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// DayAvailability is the slot catalog of one day with its blocked subset
type DayAvailability struct {
	Date    time.Time
	Slots   []types.TimeLabel
	Blocked []types.TimeLabel
}

// FreeSlots returns slots that are not blocked, in catalog order
func (d *DayAvailability) FreeSlots() []types.TimeLabel {
	blocked := make(map[types.TimeLabel]struct{}, len(d.Blocked))
	for _, b := range d.Blocked {
		blocked[b] = struct{}{}
	}

	free := make([]types.TimeLabel, 0, len(d.Slots))
	for _, s := range d.Slots {
		if _, ok := blocked[s]; !ok {
			free = append(free, s)
		}
	}
	return free
}

// IsFullyBooked returns true if every slot is blocked
func (d *DayAvailability) IsFullyBooked() bool {
	return len(d.Slots) > 0 && len(d.FreeSlots()) == 0
}

// OccupancyRate returns the blocked share as a percentage (0-100)
func (d *DayAvailability) OccupancyRate() float64 {
	if len(d.Slots) == 0 {
		return 0
	}
	return float64(len(d.Slots)-len(d.FreeSlots())) / float64(len(d.Slots)) * 100
}
