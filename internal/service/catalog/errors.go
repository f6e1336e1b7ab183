package catalog

import "errors"

var (
	// ErrCatalogNotFound возвращается, когда каталог еще не заполнен
	ErrCatalogNotFound = errors.New("catalog service: catalog not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog service: invalid input data")

	// ErrDuplicateName возвращается при повторяющихся названиях студий или id услуг
	ErrDuplicateName = errors.New("catalog service: duplicate name")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
