package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-StudioBooking/internal/pricing"
)

// UseCase use case предварительной проверки черновика бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	schedule     availability.Schedule
	pendingHold  time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	schedule availability.Schedule,
	pendingHold time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		schedule:     schedule,
		pendingHold:  pendingHold,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет черновик и возвращает полный список причин отказа.
// Отказ валидатора не является ошибкой use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: studio=%s, start=%s %s, end=%s %s",
		req.Studio, req.StartDate.Format(domain.DateFormat), req.StartTime, req.EndDate.Format(domain.DateFormat), req.EndTime)

	now := uc.timeProvider.Now()

	// 1. Автоперенос: если выбран сегодняшний день после закрытия, начинаем завтра с открытия
	draft := domain.DraftBooking{
		Studio:    req.Studio,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if !draft.StartDate.IsZero() {
		draft.StartDate = domain.DateOf(draft.StartDate)
	}
	if !draft.EndDate.IsZero() {
		draft.EndDate = domain.DateOf(draft.EndDate)
	}

	advanced := availability.AdvancePastClosing(draft, now, uc.schedule)
	wasAdvanced := !advanced.StartDate.Equal(draft.StartDate)
	if wasAdvanced {
		uc.logger.Info("ValidateBooking: start moved to %s %s (studio is closed for today)",
			advanced.StartDate.Format(domain.DateFormat), advanced.StartTime)
	}
	draft = advanced

	// 2. Получаем каталог
	catalog, err := uc.catalogRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCatalogNotFound) {
			uc.logger.Error("ValidateBooking: catalog is empty")
			return nil, ErrCatalogUnavailable
		}
		uc.logger.Error("ValidateBooking: failed to get catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to get catalog: %v", ErrInternal, err)
	}

	// 3. Получаем занятые слоты студии на даты черновика
	blocked := availability.BlockedSet{}
	studio, studioFound := catalog.FindStudio(draft.Studio)
	if studioFound && !draft.StartDate.IsZero() {
		from := draft.StartDate
		to := draft.EffectiveEndDate()
		if to.Before(from) {
			to = from
		}
		cutoff := now.Add(-uc.pendingHold)

		bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
			Studio:              studio.Name,
			From:                &from,
			To:                  &to,
			Statuses:            domain.BlockingStatuses,
			PendingCreatedAfter: &cutoff,
		})
		if err != nil {
			uc.logger.Error("ValidateBooking: failed to get bookings for studio=%s: %v", studio.Name, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		blocked = availability.ComputeBlockedTimesByDate(bookings, uc.schedule)
	}

	// 4. Проверки валидатора и проверка "не в прошлом"
	result := availability.Validate(draft, blocked, catalog, uc.schedule)
	if reason := availability.CheckNotInPast(draft, now, uc.schedule); reason != nil {
		result.Reasons = append(result.Reasons, *reason)
	}

	resp := &Response{
		Valid:     result.OK(),
		Reasons:   result.Reasons,
		Studio:    draft.Studio,
		StartDate: draft.StartDate,
		EndDate:   draft.EffectiveEndDate(),
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
		Advanced:  wasAdvanced,
	}
	if studioFound {
		resp.Studio = studio.Name
	}

	if !result.OK() {
		for _, code := range result.Codes() {
			uc.metrics.IncValidationRejection(string(code))
		}
		uc.logger.Warn("ValidateBooking: rejected: %v", result.Codes())
		return resp, nil
	}

	// 5. Длительность и стоимость аренды для допустимого черновика
	resp.DurationMinutes = draft.DurationMinutes()
	resp.StudioCost = pricing.StudioCost(studio, resp.DurationMinutes)

	uc.logger.Info("ValidateBooking: valid, studio=%s, duration=%d min, studio cost=%s",
		studio.Name, resp.DurationMinutes, resp.StudioCost)

	return resp, nil
}
