package expire_pending

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("expire_pending: internal error")
)
