package create_checkout

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
)

var (
	// ErrBookingInvalid возвращается, когда черновик не прошел проверки расписания
	ErrBookingInvalid = errors.New("create_checkout: booking is not valid")

	// ErrPriceMismatch возвращается, когда цены клиента не совпадают с каталогом
	ErrPriceMismatch = errors.New("create_checkout: price verification failed")

	// ErrSlotTaken возвращается, когда параллельная транзакция заняла слоты
	ErrSlotTaken = errors.New("create_checkout: selected time was just booked")

	// ErrPaymentProvider возвращается, когда не удалось создать сессию оплаты
	ErrPaymentProvider = errors.New("create_checkout: payment provider error")

	// ErrCatalogUnavailable возвращается, когда каталог не заполнен
	ErrCatalogUnavailable = errors.New("create_checkout: catalog is not configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_checkout: internal error")
)

// ValidationError отказ валидатора с полным списком причин
type ValidationError struct {
	Reasons []availability.Reason
}

func (e *ValidationError) Error() string {
	msgs := availability.Result{Reasons: e.Reasons}.Messages()
	return ErrBookingInvalid.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrBookingInvalid
}
