package get_availability

import "errors"

var (
	// ErrStudioNotFound возвращается, когда студии нет в каталоге
	ErrStudioNotFound = errors.New("get_availability: studio not found")

	// ErrCatalogUnavailable возвращается, когда каталог не заполнен
	ErrCatalogUnavailable = errors.New("get_availability: catalog is not configured")

	// ErrInvalidRange возвращается при некорректном периоде
	ErrInvalidRange = errors.New("get_availability: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
