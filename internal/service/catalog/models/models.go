package models

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Request модели

// StudioRequest студия в запросе замены каталога
type StudioRequest struct {
	ID                string      `json:"id" validate:"required,max=64"`
	Name              string      `json:"name" validate:"required,max=100"`
	PricePerHour      types.Cents `json:"pricePerHour" validate:"gt=0"`
	MinBookingMinutes int         `json:"minBookingMinutes" validate:"gte=0,lte=1440"`
	MaxBookableDays   int         `json:"maxBookableDays" validate:"gte=0,lte=31"`
}

// ServiceRequest дополнительная услуга в запросе замены каталога
type ServiceRequest struct {
	ID           string      `json:"id" validate:"required,max=64"`
	Name         string      `json:"name" validate:"required,max=100"`
	PricePerHour types.Cents `json:"pricePerHour" validate:"gte=0"`
	ImageURL     string      `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// ReplaceCatalogRequest полная замена каталога
type ReplaceCatalogRequest struct {
	Studios  []StudioRequest  `json:"studios" validate:"required,min=1,dive"`
	Services []ServiceRequest `json:"services" validate:"dive"`
}

// ToDomainCatalog конвертирует запрос в domain.Catalog
func (r *ReplaceCatalogRequest) ToDomainCatalog() *domain.Catalog {
	catalog := &domain.Catalog{
		Studios:  make([]domain.Studio, len(r.Studios)),
		Services: make([]domain.Service, len(r.Services)),
	}
	for i, s := range r.Studios {
		catalog.Studios[i] = domain.Studio{
			ID:                s.ID,
			Name:              s.Name,
			PricePerHour:      s.PricePerHour,
			MinBookingMinutes: s.MinBookingMinutes,
			MaxBookableDays:   s.MaxBookableDays,
		}
	}
	for i, s := range r.Services {
		catalog.Services[i] = domain.Service{
			ID:           s.ID,
			Name:         s.Name,
			PricePerHour: s.PricePerHour,
			ImageURL:     s.ImageURL,
		}
	}
	return catalog
}

// Response модели

// StudioResponse студия каталога
type StudioResponse struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	PricePerHour      types.Cents `json:"pricePerHour"`
	MinBookingMinutes int         `json:"minBookingMinutes"`
	MaxBookableDays   int         `json:"maxBookableDays"`
}

// ServiceResponse дополнительная услуга каталога
type ServiceResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	PricePerHour types.Cents `json:"pricePerHour"`
	ImageURL     string      `json:"imageUrl,omitempty"`
}

// CatalogResponse каталог студий и услуг. Цены в центах за час
type CatalogResponse struct {
	Studios   []StudioResponse  `json:"studios"`
	Services  []ServiceResponse `json:"services"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// FromDomainCatalog конвертирует domain.Catalog в CatalogResponse.
// minBookingMinutes - значение политики расписания для студий без собственного минимума
func FromDomainCatalog(c *domain.Catalog, minBookingMinutes int) *CatalogResponse {
	resp := &CatalogResponse{
		Studios:  make([]StudioResponse, len(c.Studios)),
		Services: make([]ServiceResponse, len(c.Services)),
	}
	for i, s := range c.Studios {
		minutes := s.MinBookingMinutes
		if minutes == 0 {
			minutes = minBookingMinutes
		}
		resp.Studios[i] = StudioResponse{
			ID:                s.ID,
			Name:              s.Name,
			PricePerHour:      s.PricePerHour,
			MinBookingMinutes: minutes,
			MaxBookableDays:   s.MaxBookableDays,
		}
	}
	for i, s := range c.Services {
		resp.Services[i] = ServiceResponse{
			ID:           s.ID,
			Name:         s.Name,
			PricePerHour: s.PricePerHour,
			ImageURL:     s.ImageURL,
		}
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
