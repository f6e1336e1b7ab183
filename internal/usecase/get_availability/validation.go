package get_availability

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Studio) == "" {
		return fmt.Errorf("%w: studio is required", ErrInvalidInput)
	}
	return nil
}

// validateRange проверяет период: to не раньше from и не длиннее maxDays
func validateRange(req *Request, maxDays int) error {
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidRange)
	}

	if days := domain.DaysBetween(req.From, req.To) + 1; maxDays > 0 && days > maxDays {
		return fmt.Errorf("%w: at most %d days can be requested", ErrInvalidRange, maxDays)
	}

	return nil
}
