package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrInvalidMonth возвращается, если месяц вне диапазона 1-12
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrInvalidYear возвращается при некорректном годе
	ErrInvalidYear = errors.New("year must be between 2000 and 2100")
)

const (
	minYear = 2000
	maxYear = 2100

	// MaxPageSize ограничение размера страницы списка
	MaxPageSize = 500
)

// Request модели

// ListBookingsRequest фильтры панели администратора
type ListBookingsRequest struct {
	Month  *int    // 1-12, любой год если Year не указан
	Year   *int
	Studio string  // без учета регистра
	Status *string // pending, paid, failed, expired
	Limit  uint64
	Offset uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Studio: strings.TrimSpace(r.Studio),
		Month:  r.Month,
		Year:   r.Year,
		Limit:  r.Limit,
		Offset: r.Offset,
	}

	if r.Month != nil && (*r.Month < 1 || *r.Month > 12) {
		return filter, ErrInvalidMonth
	}
	if r.Year != nil && (*r.Year < minYear || *r.Year > maxYear) {
		return filter, ErrInvalidYear
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	if r.Status != nil {
		status, err := ToDomainPaymentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.PaymentStatus{status}
	}

	return filter, nil
}

// ToDomainPaymentStatus разбирает статус оплаты
func ToDomainPaymentStatus(s string) (domain.PaymentStatus, error) {
	status := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range domain.AllStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Response модели

// LineItemResponse позиция дополнительной услуги
type LineItemResponse struct {
	ServiceID    string      `json:"serviceId"`
	Name         string      `json:"name"`
	Quantity     int         `json:"quantity"`
	PricePerHour types.Cents `json:"pricePerHour"`
}

// BookingResponse ответ с данными бронирования. Суммы в центах
type BookingResponse struct {
	ID                uuid.UUID          `json:"id"`
	Studio            string             `json:"studio"`
	StartDate         string             `json:"startDate"` // "2025-06-01"
	EndDate           string             `json:"endDate"`
	StartTime         string             `json:"startTime"` // "2:00 PM"
	EndTime           string             `json:"endTime"`
	Items             []LineItemResponse `json:"items"`
	Subtotal          types.Cents        `json:"subtotal"`
	StudioCost        types.Cents        `json:"studioCost"`
	Surcharge         types.Cents        `json:"surcharge"`
	Total             types.Cents        `json:"total"`
	TotalHours        *float64           `json:"totalHours,omitempty"`
	PaymentStatus     string             `json:"paymentStatus"`
	CheckoutSessionID *string            `json:"checkoutSessionId,omitempty"`
	CustomerName      string             `json:"customerName,omitempty"`
	CustomerEmail     string             `json:"customerEmail,omitempty"`
	CustomerPhone     string             `json:"customerPhone,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	PaidAt            *time.Time         `json:"paidAt,omitempty"`
}

// BookingListResponse список бронирований с агрегатами для панели
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Count    int                `json:"count"`
	// Выручка по оплаченным бронированиям
	PaidTotal types.Cents `json:"paidTotal"`
}

// ExportResponse CSV выгрузка
type ExportResponse struct {
	FileName string
	Content  []byte
}

// Конвертеры

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	items := make([]LineItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = LineItemResponse{
			ServiceID:    item.ServiceID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			PricePerHour: item.PricePerHour,
		}
	}

	resp := &BookingResponse{
		ID:                b.ID,
		Studio:            b.Studio,
		StartDate:         b.StartDate.Format(domain.DateFormat),
		EndDate:           b.EffectiveEndDate().Format(domain.DateFormat),
		StartTime:         b.StartTime.String(),
		EndTime:           b.EndTime.String(),
		Items:             items,
		Subtotal:          b.Subtotal,
		StudioCost:        b.StudioCost,
		Surcharge:         b.Surcharge,
		Total:             b.Total,
		PaymentStatus:     string(b.PaymentStatus),
		CheckoutSessionID: b.CheckoutSessionID,
		CustomerName:      b.Customer.Name,
		CustomerEmail:     b.Customer.Email,
		CustomerPhone:     b.Customer.Phone,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		PaidAt:            b.PaidAt,
	}

	if hours, ok := TotalHours(b); ok {
		resp.TotalHours = &hours
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(bookings)),
		Count:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
		if b.PaymentStatus == domain.StatusPaid {
			resp.PaidTotal += b.Total
		}
	}
	return resp
}

// TotalHours длительность бронирования в часах с точностью до десятых
func TotalHours(b *domain.Booking) (float64, bool) {
	minutes, ok := b.DurationMinutes()
	if !ok || minutes < 0 {
		return 0, false
	}
	return math.Round(float64(minutes)/6) / 10, true
}
