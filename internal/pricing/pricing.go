package pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var (
	// ErrUnknownProduct в корзине услуга, которой нет в каталоге
	ErrUnknownProduct = errors.New("pricing: unknown product")

	// ErrInvalidQuantity отрицательное или слишком большое количество часов
	ErrInvalidQuantity = errors.New("pricing: invalid quantity")

	// ErrSubtotalMismatch присланный subtotal не совпадает с пересчитанным
	ErrSubtotalMismatch = errors.New("pricing: subtotal mismatch")

	// ErrStudioCostMismatch присланная стоимость студии не совпадает с ожидаемой
	ErrStudioCostMismatch = errors.New("pricing: studio cost mismatch")

	// ErrTotalMismatch присланный total не совпадает с пересчитанным
	ErrTotalMismatch = errors.New("pricing: total mismatch")
)

// Line позиция корзины, как её прислал клиент
type Line struct {
	ServiceID string
	Quantity  int
}

// Input данные корзины для проверки
type Input struct {
	Items      []Line
	Subtotal   types.Cents
	StudioCost types.Cents
	Total      types.Cents
	// Surcharge фиксированная надбавка сервиса (из конфигурации)
	Surcharge types.Cents
	// ExpectedStudioCost если задан, присланный StudioCost обязан совпасть
	ExpectedStudioCost *types.Cents
}

// Result пересчитанные суммы и канонические позиции
type Result struct {
	Items      []domain.LineItem
	Subtotal   types.Cents
	StudioCost types.Cents
	Surcharge  types.Cents
	Total      types.Cents
}

// RecomputeAndVerify пересчитывает стоимость по ценам каталога и сверяет с присланными суммами.
// Сравнение точное, в центах
func RecomputeAndVerify(in Input, catalog *domain.Catalog) (*Result, error) {
	items := make([]domain.LineItem, 0, len(in.Items))
	var subtotal types.Cents

	for _, line := range in.Items {
		service, ok := catalog.FindService(line.ServiceID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, line.ServiceID)
		}
		if line.Quantity < 0 || line.Quantity > domain.MaxItemQuantity {
			return nil, fmt.Errorf("%w: %d for %q", ErrInvalidQuantity, line.Quantity, line.ServiceID)
		}
		if line.Quantity == 0 {
			continue
		}

		subtotal += service.PricePerHour.Mul(line.Quantity)
		items = append(items, domain.LineItem{
			ServiceID:    service.ID,
			Name:         service.Name,
			Quantity:     line.Quantity,
			PricePerHour: service.PricePerHour,
		})
	}

	if subtotal != in.Subtotal {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrSubtotalMismatch, subtotal, in.Subtotal)
	}

	if in.ExpectedStudioCost != nil && *in.ExpectedStudioCost != in.StudioCost {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrStudioCostMismatch, *in.ExpectedStudioCost, in.StudioCost)
	}

	total := subtotal + in.StudioCost + in.Surcharge
	if total != in.Total {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTotalMismatch, total, in.Total)
	}

	return &Result{
		Items:      items,
		Subtotal:   subtotal,
		StudioCost: in.StudioCost,
		Surcharge:  in.Surcharge,
		Total:      total,
	}, nil
}

// StudioCost стоимость аренды студии за durationMinutes минут
func StudioCost(studio *domain.Studio, durationMinutes int) types.Cents {
	if studio == nil || durationMinutes <= 0 {
		return 0
	}
	return studio.PricePerHour.PerMinutes(durationMinutes)
}

// Reason короткая метка ошибки для метрик и логов
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrSubtotalMismatch):
		return "subtotal_mismatch"
	case errors.Is(err, ErrStudioCostMismatch):
		return "studio_cost_mismatch"
	case errors.Is(err, ErrTotalMismatch):
		return "total_mismatch"
	default:
		return "other"
	}
}

// IsIntegrityError true для всех ошибок сверки цен
func IsIntegrityError(err error) bool {
	return Reason(err) != "other"
}
