package verify_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
)

// UseCase use case подтверждения оплаты по сессии провайдера
type UseCase struct {
	bookingRepo    BookingRepository
	paymentsClient PaymentsClient
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, paymentsClient PaymentsClient, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		paymentsClient: paymentsClient,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute сверяет статус сессии у провайдера и переводит бронирование pending -> paid.
// Повторный вызов для оплаченного бронирования возвращает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	uc.logger.Info("VerifyPayment: session_id=%s", sessionID)

	// 1. Валидация входных данных
	if sessionID == "" {
		uc.logger.Warn("VerifyPayment: session id is empty")
		return nil, fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	// 2. Получаем сессию у провайдера
	session, err := uc.paymentsClient.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payments.ErrSessionNotFound) {
			uc.logger.Warn("VerifyPayment: session_id=%s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("VerifyPayment: failed to retrieve session_id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	// 3. Находим бронирование по метаданным сессии
	bookingID, err := uuid.Parse(session.BookingID)
	if err != nil {
		uc.logger.Error("VerifyPayment: session_id=%s has invalid booking id %q", sessionID, session.BookingID)
		return nil, fmt.Errorf("%w: session has no booking reference", ErrBookingNotFound)
	}

	booking, err := uc.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// 4. Сессия еще не оплачена
	if !session.IsPaid() {
		if session.IsExpired() && booking.PaymentStatus == domain.StatusPending {
			booking, _, err = uc.transition(ctx, booking, domain.StatusFailed)
			if err != nil {
				return nil, err
			}
			uc.logger.Info("VerifyPayment: session_id=%s expired, booking id=%s marked failed", sessionID, bookingID)
		} else {
			uc.logger.Info("VerifyPayment: session_id=%s is not paid yet (status=%s, payment_status=%s)",
				sessionID, session.Status, session.PaymentStatus)
		}
		uc.metrics.IncPaymentVerified(string(booking.PaymentStatus))
		return toResponse(booking, sessionID, false), nil
	}

	// 5. Сессия оплачена
	switch booking.PaymentStatus {
	case domain.StatusPaid:
		uc.logger.Info("VerifyPayment: booking id=%s is already paid", bookingID)
		uc.metrics.IncPaymentVerified(string(domain.StatusPaid))
		return toResponse(booking, sessionID, true), nil

	case domain.StatusPending:
		booking, changed, err := uc.transition(ctx, booking, domain.StatusPaid)
		if err != nil {
			return nil, err
		}
		if booking.PaymentStatus != domain.StatusPaid {
			return nil, uc.notPending(booking, sessionID)
		}
		if changed {
			uc.logger.Info("VerifyPayment: booking id=%s marked paid", bookingID)
		}
		uc.metrics.IncPaymentVerified(string(domain.StatusPaid))
		return toResponse(booking, sessionID, !changed), nil

	default:
		return nil, uc.notPending(booking, sessionID)
	}
}

// transition переводит pending бронирование в статус to.
// Если статус уже изменил параллельный запрос, возвращает перечитанное бронирование и changed=false
func (uc *UseCase) transition(ctx context.Context, booking *domain.Booking, to domain.PaymentStatus) (*domain.Booking, bool, error) {
	err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusPending, to)
	switch {
	case err == nil:
		updated, err := uc.getBooking(ctx, booking.ID)
		return updated, true, err
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		uc.logger.Warn("VerifyPayment: booking id=%s changed status concurrently", booking.ID)
		updated, err := uc.getBooking(ctx, booking.ID)
		return updated, false, err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return nil, false, ErrBookingNotFound
	default:
		uc.logger.Error("VerifyPayment: failed to update booking id=%s to %s: %v", booking.ID, to, err)
		return nil, false, fmt.Errorf("%w: failed to update booking status: %v", ErrInternal, err)
	}
}

func (uc *UseCase) getBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("VerifyPayment: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("VerifyPayment: failed to get booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// notPending оплата пришла на бронирование, которое уже истекло или отменено.
// Слоты могли быть заняты другим клиентом, нужен ручной разбор
func (uc *UseCase) notPending(booking *domain.Booking, sessionID string) error {
	uc.logger.Error("VerifyPayment: session_id=%s is paid but booking id=%s is %s",
		sessionID, booking.ID, booking.PaymentStatus)
	uc.metrics.IncPaymentVerified("paid_" + string(booking.PaymentStatus))
	return fmt.Errorf("%w: booking status is %s", ErrBookingNotPending, booking.PaymentStatus)
}

func toResponse(b *domain.Booking, sessionID string, alreadyProcessed bool) *Response {
	return &Response{
		BookingID:        b.ID,
		SessionID:        sessionID,
		PaymentStatus:    b.PaymentStatus,
		Paid:             b.PaymentStatus == domain.StatusPaid,
		AlreadyProcessed: alreadyProcessed,
		Studio:           b.Studio,
		StartDate:        b.StartDate,
		EndDate:          b.EffectiveEndDate(),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Total:            b.Total,
		PaidAt:           b.PaidAt,
	}
}
