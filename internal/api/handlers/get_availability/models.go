package get_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Studio            string        `json:"studio"`
	From              string        `json:"from"`
	To                string        `json:"to"`
	OpeningTime       string        `json:"openingTime"`
	ClosingTime       string        `json:"closingTime"`
	StepMinutes       int           `json:"stepMinutes"`
	MinBookingMinutes int           `json:"minBookingMinutes"`
	Advanced          bool          `json:"advanced"`
	Days              []DayResponse `json:"days"`
}

// DayResponse слоты одного дня
type DayResponse struct {
	Date         string   `json:"date"`
	Slots        []string `json:"slots"`
	BlockedTimes []string `json:"blockedTimes"`
	FreeTimes    []string `json:"freeTimes"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(studio, fromStr, toStr string) (*getAvailability.Request, error) {
	req := &getAvailability.Request{Studio: strings.TrimSpace(studio)}

	if fromStr != "" {
		from, err := domain.ParseDate(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		req.From = from
	}

	if toStr != "" {
		to, err := domain.ParseDate(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		req.To = to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = DayResponse{
			Date:         d.Date.Format(domain.DateFormat),
			Slots:        labels(d.Slots),
			BlockedTimes: labels(d.Blocked),
			FreeTimes:    labels(d.Free),
		}
	}

	return &AvailabilityResponse{
		Studio:            resp.Studio,
		From:              formatDate(resp.From),
		To:                formatDate(resp.To),
		OpeningTime:       resp.OpeningTime.String(),
		ClosingTime:       resp.ClosingTime.String(),
		StepMinutes:       resp.StepMinutes,
		MinBookingMinutes: resp.MinBookingMinutes,
		Advanced:          resp.Advanced,
		Days:              days,
	}
}

func labels(in []types.TimeLabel) []string {
	out := make([]string, len(in))
	for i, l := range in {
		out[i] = l.String()
	}
	return out
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateFormat)
}
