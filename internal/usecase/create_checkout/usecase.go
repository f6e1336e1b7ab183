package create_checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-StudioBooking/internal/pricing"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Результаты оформления для метрик
const (
	resultCreated       = "created"
	resultInvalid       = "invalid"
	resultPriceMismatch = "price_mismatch"
	resultConflict      = "conflict"
	resultPaymentFailed = "payment_failed"
	resultError         = "error"
)

// UseCase use case оформления бронирования: проверка, пересчет цен,
// создание pending бронирования и сессии оплаты
type UseCase struct {
	bookingRepo    BookingRepository
	catalogRepo    CatalogRepository
	paymentsClient PaymentsClient
	txManager      TransactionManager
	schedule       availability.Schedule
	surcharge      types.Cents
	pendingTTL     time.Duration
	pendingHold    time.Duration
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// pendingTTL - время жизни сессии оплаты, pendingHold - сколько pending бронирование держит слоты
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	paymentsClient PaymentsClient,
	txManager TransactionManager,
	schedule availability.Schedule,
	surcharge types.Cents,
	pendingTTL time.Duration,
	pendingHold time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if pendingTTL < payments.MinSessionTTL {
		pendingTTL = payments.MinSessionTTL
	}
	if pendingHold < pendingTTL {
		pendingHold = pendingTTL
	}

	return &UseCase{
		bookingRepo:    bookingRepo,
		catalogRepo:    catalogRepo,
		paymentsClient: paymentsClient,
		txManager:      txManager,
		schedule:       schedule,
		surcharge:      surcharge,
		pendingTTL:     pendingTTL,
		pendingHold:    pendingHold,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет оформление.
// Чтение занятости, проверка и запись бронирования идут в одной сериализуемой транзакции
// под блокировкой студии. Сессия оплаты создается после коммита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckout: studio=%s, start=%s %s, end=%s %s, items=%d, total=%s",
		req.Studio, req.StartDate.Format(domain.DateFormat), req.StartTime,
		req.EndDate.Format(domain.DateFormat), req.EndTime, len(req.Items), req.Total)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckout: validation failed: %v", err)
		uc.metrics.IncCheckout(resultInvalid)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем каталог
	catalog, err := uc.catalogRepo.Get(ctx)
	if err != nil {
		uc.metrics.IncCheckout(resultError)
		if errors.Is(err, catalogRepo.ErrCatalogNotFound) {
			uc.logger.Error("CreateCheckout: catalog is empty")
			return nil, ErrCatalogUnavailable
		}
		uc.logger.Error("CreateCheckout: failed to get catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to get catalog: %v", ErrInternal, err)
	}

	draft := domain.DraftBooking{
		Studio:    req.Studio,
		StartDate: dateOrZero(req.StartDate),
		EndDate:   dateOrZero(req.EndDate),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	// 4. Неизвестная студия: блокировать нечего, отвечаем причинами валидатора
	studio, ok := catalog.FindStudio(draft.Studio)
	if !ok {
		return nil, uc.reject(uc.validate(draft, availability.BlockedSet{}, catalog, now))
	}

	var (
		created *domain.Booking
		priced  *pricing.Result
	)

	// 5. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем студию до конца транзакции
		if err := uc.bookingRepo.LockStudio(txCtx, studio.Name); err != nil {
			uc.logger.Error("CreateCheckout: failed to lock studio=%s: %v", studio.Name, err)
			return fmt.Errorf("%w: failed to lock studio: %w", ErrInternal, err)
		}

		// 5.2. Получаем активные бронирования студии на даты черновика
		from := draft.StartDate
		to := draft.EffectiveEndDate()
		if to.Before(from) {
			to = from
		}
		cutoff := now.Add(-uc.pendingHold)

		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			Studio:              studio.Name,
			From:                &from,
			To:                  &to,
			Statuses:            domain.BlockingStatuses,
			PendingCreatedAfter: &cutoff,
		})
		if err != nil {
			uc.logger.Error("CreateCheckout: failed to get bookings for studio=%s: %v", studio.Name, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 5.3. Проверки расписания
		if result := uc.validate(draft, availability.ComputeBlockedTimesByDate(bookings, uc.schedule), catalog, now); !result.OK() {
			return &ValidationError{Reasons: result.Reasons}
		}

		// 5.4. Пересчет цен по каталогу
		duration := draft.DurationMinutes()
		expectedStudioCost := pricing.StudioCost(studio, duration)

		priced, err = pricing.RecomputeAndVerify(pricing.Input{
			Items:              toPricingLines(req.Items),
			Subtotal:           req.Subtotal,
			StudioCost:         req.StudioCost,
			Total:              req.Total,
			Surcharge:          uc.surcharge,
			ExpectedStudioCost: &expectedStudioCost,
		}, catalog)
		if err != nil {
			uc.logger.Warn("CreateCheckout: price guard rejected: %v (studio=%s, duration=%d min, expected studio cost=%s)",
				err, studio.Name, duration, expectedStudioCost)
			return fmt.Errorf("%w: %w", ErrPriceMismatch, err)
		}

		// 5.5. Создаем pending бронирование с каноническими ценами
		booking := &domain.Booking{
			Studio:        studio.Name,
			StartDate:     draft.StartDate,
			EndDate:       draft.EffectiveEndDate(),
			StartTime:     draft.StartTime,
			EndTime:       draft.EndTime,
			Items:         priced.Items,
			Subtotal:      priced.Subtotal,
			StudioCost:    priced.StudioCost,
			Surcharge:     priced.Surcharge,
			Total:         priced.Total,
			PaymentStatus: domain.StatusPending,
			Customer: domain.Customer{
				Name:  strings.TrimSpace(req.CustomerName),
				Email: strings.TrimSpace(req.CustomerEmail),
				Phone: strings.TrimSpace(req.CustomerPhone),
			},
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateCheckout: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("CreateCheckout: created pending booking id=%s, total=%s", created.ID, created.Total)

	// 6. Создаем сессию оплаты вне транзакции
	expiresAt := now.Add(uc.pendingTTL)
	session, err := uc.paymentsClient.CreateCheckoutSession(ctx, &payments.CheckoutRequest{
		BookingID:     created.ID.String(),
		Studio:        created.Studio,
		Period:        formatPeriod(created),
		Items:         created.Items,
		StudioCost:    created.StudioCost,
		Surcharge:     created.Surcharge,
		CustomerEmail: created.Customer.Email,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		uc.logger.Error("CreateCheckout: failed to create checkout session for booking id=%s: %v", created.ID, err)

		// Бронирование без сессии не должно держать слоты
		if updErr := uc.bookingRepo.UpdateStatus(ctx, created.ID, domain.StatusPending, domain.StatusFailed); updErr != nil {
			uc.logger.Error("CreateCheckout: failed to mark booking id=%s as failed: %v", created.ID, updErr)
		}

		uc.metrics.IncCheckout(resultPaymentFailed)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	// 7. Сохраняем ID сессии. Проверка оплаты находит бронирование по метаданным сессии,
	// поэтому ошибка здесь не прерывает оформление
	if err := uc.bookingRepo.SetCheckoutSession(ctx, created.ID, session.ID); err != nil {
		uc.logger.Error("CreateCheckout: failed to save session id=%s for booking id=%s: %v", session.ID, created.ID, err)
	}

	uc.metrics.IncCheckout(resultCreated)
	uc.logger.Info("CreateCheckout: checkout session id=%s created for booking id=%s", session.ID, created.ID)

	return &Response{
		BookingID:   created.ID,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		Studio:      created.Studio,
		Subtotal:    created.Subtotal,
		StudioCost:  created.StudioCost,
		Surcharge:   created.Surcharge,
		Total:       created.Total,
		ExpiresAt:   expiresAt,
	}, nil
}

// validate проверки валидатора плюс проверка "не в прошлом".
// Автопереноса здесь нет: оформить можно только то, что клиент видел и подтвердил
func (uc *UseCase) validate(d domain.DraftBooking, blocked availability.BlockedSet, catalog *domain.Catalog, now time.Time) availability.Result {
	result := availability.Validate(d, blocked, catalog, uc.schedule)
	if reason := availability.CheckNotInPast(d, now, uc.schedule); reason != nil {
		result.Reasons = append(result.Reasons, *reason)
	}
	return result
}

// reject фиксирует отказ валидатора
func (uc *UseCase) reject(result availability.Result) error {
	for _, code := range result.Codes() {
		uc.metrics.IncValidationRejection(string(code))
	}
	uc.metrics.IncCheckout(resultInvalid)
	uc.logger.Warn("CreateCheckout: booking rejected: %v", result.Codes())
	return &ValidationError{Reasons: result.Reasons}
}

// mapTxError переводит ошибку транзакции в ошибку use case
func (uc *UseCase) mapTxError(err error) error {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return uc.reject(availability.Result{Reasons: validationErr.Reasons})
	case errors.Is(err, ErrPriceMismatch):
		uc.metrics.IncPriceGuardRejection(pricing.Reason(err))
		uc.metrics.IncCheckout(resultPriceMismatch)
		return err
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateCheckout: concurrent booking detected: %v", err)
		uc.metrics.IncCheckout(resultConflict)
		return ErrSlotTaken
	case errors.Is(err, ErrInternal):
		uc.metrics.IncCheckout(resultError)
		return err
	default:
		uc.logger.Error("CreateCheckout: transaction failed: %v", err)
		uc.metrics.IncCheckout(resultError)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

func toPricingLines(items []Item) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{ServiceID: strings.TrimSpace(item.ServiceID), Quantity: item.Quantity}
	}
	return lines
}

// formatPeriod "2025-06-01 2:00 PM - 4:00 PM" или "2025-06-01 9:00 PM - 2025-06-03 10:00 AM"
func formatPeriod(b *domain.Booking) string {
	start := b.StartDate.Format(domain.DateFormat)
	end := b.EffectiveEndDate().Format(domain.DateFormat)
	if start == end {
		return fmt.Sprintf("%s %s - %s", start, b.StartTime, b.EndTime)
	}
	return fmt.Sprintf("%s %s - %s %s", start, b.StartTime, end, b.EndTime)
}

func dateOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return domain.DateOf(t)
}
