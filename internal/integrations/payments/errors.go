package payments

import "errors"

var (
	// ErrSessionNotFound возвращается, когда checkout сессия не найдена в Stripe
	ErrSessionNotFound = errors.New("payments client: checkout session not found")

	// ErrProvider возвращается при ошибке на стороне Stripe
	ErrProvider = errors.New("payments client: provider error")

	// ErrInvalidRequest возвращается при некорректных параметрах сессии
	ErrInvalidRequest = errors.New("payments client: invalid request")
)
