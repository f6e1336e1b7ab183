package expire_pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
)

// outcome решение по одному протухшему pending бронированию
type outcome int

const (
	outcomeExpire outcome = iota
	outcomePaid
	outcomeKeep
)

// UseCase use case отмены протухших pending бронирований
type UseCase struct {
	bookingRepo    BookingRepository
	paymentsClient PaymentsClient
	pendingHold    time.Duration
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// pendingHold = TTL сессии оплаты + запас; более старые pending бронирования сверяются с провайдером
func NewUseCase(bookingRepo BookingRepository, paymentsClient PaymentsClient, pendingHold time.Duration, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		paymentsClient: paymentsClient,
		pendingHold:    pendingHold,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute сверяет pending бронирования старше pendingHold с сессиями оплаты.
// Оплаченные переводятся в paid, неоплаченные в expired. Возвращает количество expired
func (uc *UseCase) Execute(ctx context.Context) (int64, error) {
	cutoff := uc.timeProvider.Now().Add(-uc.pendingHold)

	// 1. Находим протухшие pending бронирования
	stale, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Statuses:      []domain.PaymentStatus{domain.StatusPending},
		CreatedBefore: &cutoff,
	})
	if err != nil {
		uc.logger.Error("ExpirePending: failed to list pending bookings created before %s: %v", cutoff.Format(time.RFC3339), err)
		return 0, fmt.Errorf("%w: failed to list pending bookings: %v", ErrInternal, err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	// 2. Сверяем каждое с провайдером
	toExpire := make([]uuid.UUID, 0, len(stale))
	recovered := 0
	for _, b := range stale {
		switch uc.reconcile(ctx, b) {
		case outcomeExpire:
			toExpire = append(toExpire, b.ID)
		case outcomePaid:
			recovered++
		}
	}

	if recovered > 0 {
		uc.logger.Info("ExpirePending: %d unverified paid bookings marked paid", recovered)
	}

	// 3. Освобождаем слоты неоплаченных
	expired, err := uc.bookingRepo.ExpirePending(ctx, toExpire, cutoff)
	if err != nil {
		uc.logger.Error("ExpirePending: failed to expire %d bookings: %v", len(toExpire), err)
		return 0, fmt.Errorf("%w: failed to expire pending bookings: %v", ErrInternal, err)
	}
	if expired > 0 {
		uc.metrics.AddPendingExpired(expired)
		uc.logger.Info("ExpirePending: %d pending bookings created before %s marked expired",
			expired, cutoff.Format(time.RFC3339))
	}
	return expired, nil
}

func (uc *UseCase) reconcile(ctx context.Context, b *domain.Booking) outcome {
	if b.CheckoutSessionID == nil || *b.CheckoutSessionID == "" {
		return outcomeExpire
	}
	sessionID := *b.CheckoutSessionID

	session, err := uc.paymentsClient.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payments.ErrSessionNotFound) {
			uc.logger.Warn("ExpirePending: session_id=%s of booking id=%s not found", sessionID, b.ID)
			return outcomeExpire
		}
		// Провайдер недоступен: повторим на следующем проходе
		uc.logger.Warn("ExpirePending: failed to retrieve session_id=%s of booking id=%s: %v", sessionID, b.ID, err)
		return outcomeKeep
	}

	if session.IsOpen() {
		return outcomeKeep
	}
	if !session.IsPaid() {
		return outcomeExpire
	}

	if session.BookingID != b.ID.String() {
		uc.logger.Error("ExpirePending: session_id=%s is paid but references booking %q, not id=%s",
			sessionID, session.BookingID, b.ID)
		return outcomeKeep
	}

	err = uc.bookingRepo.UpdateStatus(ctx, b.ID, domain.StatusPending, domain.StatusPaid)
	switch {
	case err == nil:
		uc.metrics.IncPaymentVerified(string(domain.StatusPaid))
		uc.logger.Info("ExpirePending: session_id=%s is paid, booking id=%s marked paid", sessionID, b.ID)
		return outcomePaid
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		uc.logger.Warn("ExpirePending: booking id=%s changed status concurrently", b.ID)
	default:
		uc.logger.Error("ExpirePending: failed to mark booking id=%s paid: %v", b.ID, err)
	}
	return outcomeKeep
}
