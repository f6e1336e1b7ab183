package verify_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_payment: invalid input")

	// ErrSessionNotFound возвращается, когда сессия оплаты не найдена у провайдера
	ErrSessionNotFound = errors.New("verify_payment: checkout session not found")

	// ErrBookingNotFound возвращается, когда бронирование из метаданных сессии не найдено
	ErrBookingNotFound = errors.New("verify_payment: booking not found")

	// ErrBookingNotPending возвращается, когда оплаченная сессия относится к уже закрытому бронированию
	ErrBookingNotPending = errors.New("verify_payment: booking is no longer pending")

	// ErrPaymentProvider возвращается при ошибке платежного провайдера
	ErrPaymentProvider = errors.New("verify_payment: payment provider error")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("verify_payment: internal error")
)
