package validate_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	validateBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// ValidateBookingRequest HTTP request model. Пустые поля допустимы: о них сообщит валидатор
type ValidateBookingRequest struct {
	Studio    string `json:"studio"`
	StartDate string `json:"startDate"` // "2025-06-01"
	EndDate   string `json:"endDate,omitempty"`
	StartTime string `json:"startTime"` // "2:00 PM"
	EndTime   string `json:"endTime"`
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	Valid           bool                  `json:"valid"`
	Reasons         []availability.Reason `json:"reasons"`
	Studio          string                `json:"studio"`
	StartDate       string                `json:"startDate,omitempty"`
	EndDate         string                `json:"endDate,omitempty"`
	StartTime       string                `json:"startTime"`
	EndTime         string                `json:"endTime"`
	Advanced        bool                  `json:"advanced"`
	DurationMinutes int                   `json:"durationMinutes,omitempty"`
	StudioCost      types.Cents           `json:"studioCost,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Метки времени не разбираются здесь: некорректную метку вернет валидатор как причину
func (r *ValidateBookingRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	startDate, err := parseOptionalDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	endDate, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	return &validateBooking.Request{
		Studio:    strings.TrimSpace(r.Studio),
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: types.TimeLabel(strings.TrimSpace(r.StartTime)),
		EndTime:   types.TimeLabel(strings.TrimSpace(r.EndTime)),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	reasons := resp.Reasons
	if reasons == nil {
		reasons = []availability.Reason{}
	}

	return &ValidateBookingResponse{
		Valid:           resp.Valid,
		Reasons:         reasons,
		Studio:          resp.Studio,
		StartDate:       formatOptionalDate(resp.StartDate),
		EndDate:         formatOptionalDate(resp.EndDate),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Advanced:        resp.Advanced,
		DurationMinutes: resp.DurationMinutes,
		StudioCost:      resp.StudioCost,
	}
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseDate(s)
}

func formatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateFormat)
}
