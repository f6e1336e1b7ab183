package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда текущий статус не совпадает с ожидаемым
	ErrStatusConflict = errors.New("booking.repository: unexpected payment status")

	// ErrNotInTransaction возвращается, когда операция требует активной транзакции
	ErrNotInTransaction = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodeItems возвращается при ошибке сериализации позиций бронирования
	ErrEncodeItems = errors.New("booking.repository: failed to encode items")
)
