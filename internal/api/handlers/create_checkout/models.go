package create_checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createCheckout "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_checkout"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// CreateCheckoutRequest HTTP request model
type CreateCheckoutRequest struct {
	Studio    string `json:"studio"`
	StartDate string `json:"startDate"` // "2025-06-01"
	EndDate   string `json:"endDate,omitempty"`
	StartTime string `json:"startTime"` // "10:00 AM"
	EndTime   string `json:"endTime"`

	Items []ItemRequest `json:"items"`

	Subtotal   types.Cents `json:"subtotal"`
	StudioCost types.Cents `json:"studioCost"`
	Total      types.Cents `json:"total"`

	Customer CustomerRequest `json:"customer"`
}

// ItemRequest позиция доп. услуги
type ItemRequest struct {
	ServiceID string `json:"serviceId"`
	Quantity  int    `json:"quantity"`
}

// CustomerRequest контактные данные клиента
type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateCheckoutResponse HTTP response model
type CreateCheckoutResponse struct {
	BookingID   uuid.UUID   `json:"bookingId"`
	SessionID   string      `json:"sessionId"`
	CheckoutURL string      `json:"checkoutUrl"`
	Studio      string      `json:"studio"`
	Subtotal    types.Cents `json:"subtotal"`
	StudioCost  types.Cents `json:"studioCost"`
	Surcharge   types.Cents `json:"surcharge"`
	Total       types.Cents `json:"total"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}

// ValidationErrorResponse тело ответа 422 с причинами отказа
type ValidationErrorResponse struct {
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Reasons []availability.Reason `json:"reasons"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCheckoutRequest) ToUseCaseRequest() (*createCheckout.Request, error) {
	startDate, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	items := make([]createCheckout.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createCheckout.Item{
			ServiceID: strings.TrimSpace(item.ServiceID),
			Quantity:  item.Quantity,
		})
	}

	return &createCheckout.Request{
		Studio:        strings.TrimSpace(r.Studio),
		StartDate:     startDate,
		EndDate:       endDate,
		StartTime:     types.TimeLabel(strings.TrimSpace(r.StartTime)),
		EndTime:       types.TimeLabel(strings.TrimSpace(r.EndTime)),
		Items:         items,
		Subtotal:      r.Subtotal,
		StudioCost:    r.StudioCost,
		Total:         r.Total,
		CustomerName:  strings.TrimSpace(r.Customer.Name),
		CustomerEmail: strings.TrimSpace(r.Customer.Email),
		CustomerPhone: strings.TrimSpace(r.Customer.Phone),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCheckout.Response) *CreateCheckoutResponse {
	return &CreateCheckoutResponse{
		BookingID:   resp.BookingID,
		SessionID:   resp.SessionID,
		CheckoutURL: resp.CheckoutURL,
		Studio:      resp.Studio,
		Subtotal:    resp.Subtotal,
		StudioCost:  resp.StudioCost,
		Surcharge:   resp.Surcharge,
		Total:       resp.Total,
		ExpiresAt:   resp.ExpiresAt,
	}
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(s)
}
