package get_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/catalog"
)

// UseCase use case для получения занятости студии по дням
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	schedule     availability.Schedule
	pendingHold  time.Duration
	maxRangeDays int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// pendingHold - сколько неоплаченное бронирование держит слоты с момента создания
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	schedule availability.Schedule,
	pendingHold time.Duration,
	maxRangeDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		schedule:     schedule,
		pendingHold:  pendingHold,
		maxRangeDays: maxRangeDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: studio=%s, from=%s, to=%s",
		req.Studio, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и нормализуем период
	now := uc.timeProvider.Now()
	today := domain.DateOf(uc.schedule.In(now))

	from := domain.DateOf(req.From)
	if req.From.IsZero() {
		from = today
	}
	to := domain.DateOf(req.To)
	if req.To.IsZero() {
		to = from
	}

	// 3. Если сегодня студия уже закрыта, начинаем с завтрашнего дня
	draft := domain.DraftBooking{Studio: req.Studio, StartDate: from, EndDate: to, StartTime: uc.schedule.OpeningTime()}
	advancedDraft := availability.AdvancePastClosing(draft, now, uc.schedule)
	advanced := !advancedDraft.StartDate.Equal(draft.StartDate)
	from, to = advancedDraft.StartDate, advancedDraft.EffectiveEndDate()

	normalized := &Request{Studio: req.Studio, From: from, To: to}
	if err := validateRange(normalized, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetAvailability: invalid range: %v", err)
		return nil, err
	}

	// 4. Получаем каталог и студию
	catalog, err := uc.catalogRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCatalogNotFound) {
			uc.logger.Error("GetAvailability: catalog is empty")
			return nil, ErrCatalogUnavailable
		}
		uc.logger.Error("GetAvailability: failed to get catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to get catalog: %v", ErrInternal, err)
	}

	studio, ok := catalog.FindStudio(req.Studio)
	if !ok {
		uc.logger.Warn("GetAvailability: studio=%s not found", req.Studio)
		return nil, ErrStudioNotFound
	}

	// 5. Получаем активные бронирования студии за период
	cutoff := now.Add(-uc.pendingHold)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Studio:              studio.Name,
		From:                &from,
		To:                  &to,
		Statuses:            domain.BlockingStatuses,
		PendingCreatedAfter: &cutoff,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for studio=%s: %v", studio.Name, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Строим занятые слоты по дням
	blocked := availability.ComputeBlockedTimesByDate(bookings, uc.schedule)

	days := availability.Days(from, to)
	result := make([]Day, 0, len(days))
	for _, date := range days {
		day := uc.schedule.DayAvailability(blocked, date)
		result = append(result, Day{
			Date:    day.Date,
			Slots:   day.Slots,
			Blocked: day.Blocked,
			Free:    day.FreeSlots(),
		})
	}

	uc.logger.Info("GetAvailability: studio=%s, %d bookings, %d days, blocked on %s",
		studio.Name, len(bookings), len(result), strings.Join(blocked.Dates(), ","))

	return &Response{
		Studio:            studio.Name,
		From:              from,
		To:                to,
		OpeningTime:       uc.schedule.OpeningTime(),
		ClosingTime:       uc.schedule.ClosingTime(),
		StepMinutes:       uc.schedule.StepMinutes,
		MinBookingMinutes: uc.schedule.MinBookingMinutes(studio),
		Advanced:          advanced,
		Days:              result,
	}, nil
}
