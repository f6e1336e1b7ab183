package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// ReasonCode машинно-читаемый код причины отказа
type ReasonCode string

const (
	ReasonStudioRequired    ReasonCode = "studio_required"
	ReasonStartDateRequired ReasonCode = "start_date_required"
	ReasonStartTimeRequired ReasonCode = "start_time_required"
	ReasonEndTimeRequired   ReasonCode = "end_time_required"
	ReasonUnknownStudio     ReasonCode = "unknown_studio"
	ReasonInvalidTime       ReasonCode = "invalid_time"
	ReasonOffGrid           ReasonCode = "off_grid"
	ReasonStartAfterClosing ReasonCode = "start_after_closing"
	ReasonOutsideHours      ReasonCode = "outside_hours"
	ReasonEndNotAfterStart  ReasonCode = "end_not_after_start"
	ReasonDurationTooShort  ReasonCode = "duration_too_short"
	ReasonSlotConflict      ReasonCode = "slot_conflict"
	ReasonSpanTooLong       ReasonCode = "span_too_long"
	ReasonStartInPast       ReasonCode = "start_in_past"
)

// maxConflictLabels сколько занятых слотов перечислять в сообщении
const maxConflictLabels = 5

// Reason причина отказа
type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
}

// Result результат проверки: пустой список причин = бронирование допустимо
type Result struct {
	Reasons []Reason `json:"reasons"`
}

// OK true, если причин отказа нет
func (r Result) OK() bool {
	return len(r.Reasons) == 0
}

// Has true, если среди причин есть code
func (r Result) Has(code ReasonCode) bool {
	for _, reason := range r.Reasons {
		if reason.Code == code {
			return true
		}
	}
	return false
}

// Codes коды причин в порядке проверок
func (r Result) Codes() []ReasonCode {
	codes := make([]ReasonCode, len(r.Reasons))
	for i, reason := range r.Reasons {
		codes[i] = reason.Code
	}
	return codes
}

// Messages сообщения причин
func (r Result) Messages() []string {
	msgs := make([]string, len(r.Reasons))
	for i, reason := range r.Reasons {
		msgs[i] = reason.Message
	}
	return msgs
}

func (r *Result) add(code ReasonCode, format string, args ...interface{}) {
	r.Reasons = append(r.Reasons, Reason{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Validate проверяет черновик бронирования против занятых слотов, каталога и политики расписания.
// Выполняются все проверки, результат содержит полный список причин.
// Функция чистая: автоперенос после закрытия и проверка "в прошлом" выполняются вызывающей стороной
func Validate(d domain.DraftBooking, blocked BlockedSet, catalog *domain.Catalog, s Schedule) Result {
	var res Result

	// 1. Обязательные поля
	studioName := strings.TrimSpace(d.Studio)
	if studioName == "" {
		res.add(ReasonStudioRequired, "Please select a studio")
	}
	if d.StartDate.IsZero() {
		res.add(ReasonStartDateRequired, "Please select a start date")
	}
	if d.StartTime.IsZero() {
		res.add(ReasonStartTimeRequired, "Please select a start time")
	}
	if d.EndTime.IsZero() {
		res.add(ReasonEndTimeRequired, "Please select an end time")
	}

	var studio *domain.Studio
	if studioName != "" {
		found, ok := catalog.FindStudio(studioName)
		if !ok {
			res.add(ReasonUnknownStudio, "Studio %q is not available", studioName)
		} else {
			studio = found
		}
	}

	startMinutes, startOK := labelMinutes(d.StartTime)
	endMinutes, endOK := labelMinutes(d.EndTime)
	if !d.StartTime.IsZero() && !startOK {
		res.add(ReasonInvalidTime, "Start time %q is not a valid time", d.StartTime)
	}
	if !d.EndTime.IsZero() && !endOK {
		res.add(ReasonInvalidTime, "End time %q is not a valid time", d.EndTime)
	}

	// Дальнейшие проверки требуют дат и корректных времен
	if d.StartDate.IsZero() || !startOK || !endOK {
		return res
	}

	if !s.onGrid(startMinutes) || !s.onGrid(endMinutes) {
		res.add(ReasonOffGrid, "Times must be on %d-minute steps", s.StepMinutes)
	}

	// 2. Часы работы
	if startMinutes >= s.CloseMinutes {
		res.add(ReasonStartAfterClosing, "Start time must be before closing time (%s)", s.ClosingTime())
	} else if startMinutes < s.OpenMinutes {
		res.add(ReasonOutsideHours, "Start time must not be before opening time (%s)", s.OpeningTime())
	}
	if endMinutes > s.CloseMinutes || endMinutes < s.OpenMinutes {
		res.add(ReasonOutsideHours, "End time must be within working hours (%s - %s)", s.OpeningTime(), s.ClosingTime())
	}

	// 3. Конец строго после начала
	startDate := domain.DateOf(d.StartDate)
	endDate := domain.DateOf(d.EffectiveEndDate())
	days := domain.DaysBetween(startDate, endDate)
	duration := days*types.MinutesPerDay + endMinutes - startMinutes

	if endDate.Before(startDate) || duration <= 0 {
		res.add(ReasonEndNotAfterStart, "End date and time must be after the start date and time")
		return res
	}

	// 4. Минимальная длительность (с учетом override студии)
	if minimum := s.MinBookingMinutes(studio); duration < minimum {
		res.add(ReasonDurationTooShort, "Minimum booking duration is %s", formatMinutes(minimum))
	}

	// 5. Пересечения с занятыми слотами
	if conflicts := s.conflicts(startDate, endDate, startMinutes, endMinutes, blocked); len(conflicts) > 0 {
		shown := conflicts
		if len(shown) > maxConflictLabels {
			shown = shown[:maxConflictLabels]
		}
		res.add(ReasonSlotConflict, "Selected time overlaps an existing booking: %s", strings.Join(shown, ", "))
	}

	// 6. Максимальное количество дней
	if studio != nil && studio.MaxBookableDays > 0 && days+1 > studio.MaxBookableDays {
		res.add(ReasonSpanTooLong, "%s can be booked for at most %d day(s)", studio.Name, studio.MaxBookableDays)
	}

	return res
}

// CheckNotInPast проверяет, что начало бронирования не раньше now (в часовом поясе студии)
func CheckNotInPast(d domain.DraftBooking, now time.Time, s Schedule) *Reason {
	startMinutes, ok := labelMinutes(d.StartTime)
	if !ok || d.StartDate.IsZero() {
		return nil
	}

	local := s.In(now)
	today := domain.DateOf(local)
	startDate := domain.DateOf(d.StartDate)
	nowMinutes := local.Hour()*60 + local.Minute()

	if startDate.Before(today) || (startDate.Equal(today) && startMinutes < nowMinutes) {
		return &Reason{Code: ReasonStartInPast, Message: "Start date and time must not be in the past"}
	}
	return nil
}

// AdvancePastClosing если начало сегодня, а студия уже закрылась, переносит начало
// на открытие следующего дня. Дата окончания подтягивается, если оказалась раньше новой даты начала
func AdvancePastClosing(d domain.DraftBooking, now time.Time, s Schedule) domain.DraftBooking {
	if d.StartDate.IsZero() {
		return d
	}

	local := s.In(now)
	today := domain.DateOf(local)
	nowMinutes := local.Hour()*60 + local.Minute()

	if !domain.DateOf(d.StartDate).Equal(today) || nowMinutes < s.CloseMinutes {
		return d
	}

	tomorrow := today.AddDate(0, 0, 1)
	advanced := d.WithStart(tomorrow, s.OpeningTime())
	if !d.EndDate.IsZero() && domain.DateOf(d.EndDate).Before(tomorrow) {
		advanced = advanced.WithEndDate(tomorrow)
	}
	return advanced
}

// conflicts занятые слоты внутри [start, end) на каждом дне бронирования
func (s Schedule) conflicts(startDate, endDate time.Time, startMinutes, endMinutes int, blocked BlockedSet) []string {
	if len(blocked) == 0 {
		return nil
	}

	var out []string
	slots := s.slotMinutes()

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		from := s.OpenMinutes
		if day.Equal(startDate) {
			from = startMinutes
		}
		to := s.CloseMinutes
		if day.Equal(endDate) {
			to = endMinutes
		}

		for _, m := range slots {
			if m >= from && m < to && blocked.IsBlocked(day, m) {
				out = append(out, fmt.Sprintf("%s %s", day.Format(domain.DateFormat), types.FromMinutes(m)))
			}
		}
	}
	return out
}

func (s Schedule) onGrid(minutes int) bool {
	return s.StepMinutes > 0 && (minutes-s.OpenMinutes)%s.StepMinutes == 0
}

func labelMinutes(l types.TimeLabel) (int, bool) {
	if l.IsZero() || l.IsUnavailable() {
		return 0, false
	}
	m, err := l.Minutes()
	if err != nil {
		return 0, false
	}
	return m, true
}

func formatMinutes(m int) string {
	h, rest := m/60, m%60
	switch {
	case rest == 0 && h == 1:
		return "1 hour"
	case rest == 0:
		return fmt.Sprintf("%d hours", h)
	case h == 0:
		return fmt.Sprintf("%d minutes", rest)
	default:
		return fmt.Sprintf("%dh %dm", h, rest)
	}
}
