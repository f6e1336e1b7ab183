package validate_booking

import "errors"

var (
	// ErrCatalogUnavailable возвращается, когда каталог не заполнен
	ErrCatalogUnavailable = errors.New("validate_booking: catalog is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_booking: internal error")
)
