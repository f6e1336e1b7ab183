package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Studio is a bookable room
type Studio struct {
	ID           string      `bson:"id"`
	Name         string      `bson:"name"`
	PricePerHour types.Cents `bson:"price_per_hour"`
	// 0 means the schedule default applies
	MinBookingMinutes int `bson:"min_booking_minutes"`
	// 0 means unlimited
	MaxBookableDays int `bson:"max_bookable_days"`
}

// Service is an hourly add-on
type Service struct {
	ID           string      `bson:"id"`
	Name         string      `bson:"name"`
	PricePerHour types.Cents `bson:"price_per_hour"`
	ImageURL     string      `bson:"image_url,omitempty"`
}

// Catalog is the single product document: studios and add-on services
type Catalog struct {
	Studios   []Studio  `bson:"studios"`
	Services  []Service `bson:"services"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// FindStudio looks a studio up by name, case-insensitively
func (c *Catalog) FindStudio(name string) (*Studio, bool) {
	if c == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	for i := range c.Studios {
		if strings.EqualFold(c.Studios[i].Name, name) {
			return &c.Studios[i], true
		}
	}
	return nil, false
}

// FindService looks a service up by its id
func (c *Catalog) FindService(id string) (*Service, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Services {
		if c.Services[i].ID == id {
			return &c.Services[i], true
		}
	}
	return nil, false
}
