package create_checkout

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/validator"
)

// validateRequest валидирует входные данные запроса.
// Проверки расписания выполняет availability.Validate
func validateRequest(req *Request) error {
	if len(req.CustomerName) > domain.MaxCustomerNameLen {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if email := strings.TrimSpace(req.CustomerEmail); email != "" {
		if err := validator.ValidateVar(email, "email"); err != nil {
			return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
		}
	}

	if req.Subtotal < 0 || req.StudioCost < 0 || req.Total < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.ServiceID) == "" {
			return fmt.Errorf("%w: item service id is required", ErrInvalidInput)
		}
		if item.Quantity > domain.MaxItemQuantity {
			return fmt.Errorf("%w: item %s quantity exceeds %d hours", ErrInvalidInput, item.ServiceID, domain.MaxItemQuantity)
		}
		if _, dup := seen[item.ServiceID]; dup {
			return fmt.Errorf("%w: duplicate item %s", ErrInvalidInput, item.ServiceID)
		}
		seen[item.ServiceID] = struct{}{}
	}

	return nil
}
