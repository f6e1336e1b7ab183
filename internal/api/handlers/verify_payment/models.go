package verify_payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	verifyPayment "github.com/m04kA/SMC-StudioBooking/internal/usecase/verify_payment"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// VerifyPaymentResponse HTTP response model
type VerifyPaymentResponse struct {
	BookingID        uuid.UUID   `json:"bookingId"`
	SessionID        string      `json:"sessionId"`
	PaymentStatus    string      `json:"paymentStatus"`
	Paid             bool        `json:"paid"`
	AlreadyProcessed bool        `json:"alreadyProcessed"`
	Studio           string      `json:"studio"`
	StartDate        string      `json:"startDate"`
	EndDate          string      `json:"endDate"`
	StartTime        string      `json:"startTime"`
	EndTime          string      `json:"endTime"`
	Total            types.Cents `json:"total"`
	PaidAt           *time.Time  `json:"paidAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *verifyPayment.Response) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		BookingID:        resp.BookingID,
		SessionID:        resp.SessionID,
		PaymentStatus:    string(resp.PaymentStatus),
		Paid:             resp.Paid,
		AlreadyProcessed: resp.AlreadyProcessed,
		Studio:           resp.Studio,
		StartDate:        resp.StartDate.Format(domain.DateFormat),
		EndDate:          resp.EndDate.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		Total:            resp.Total,
		PaidAt:           resp.PaidAt,
	}
}
