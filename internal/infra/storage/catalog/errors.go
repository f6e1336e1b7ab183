package catalog

import "errors"

var (
	// ErrCatalogNotFound возвращается, когда каталог пуст
	ErrCatalogNotFound = errors.New("catalog.repository: catalog not found")

	// ErrDuplicateName возвращается при дублировании имени студии или ID позиции
	ErrDuplicateName = errors.New("catalog.repository: duplicate studio name or item id")

	// ErrNotInTransaction возвращается, когда операция требует активной транзакции
	ErrNotInTransaction = errors.New("catalog.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
