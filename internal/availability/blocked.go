package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// BlockedSet занятые слоты по датам: "2006-01-02" -> множество минут от полуночи
type BlockedSet map[string]map[int]struct{}

// DateKey ключ даты в BlockedSet
func DateKey(t time.Time) string {
	return domain.DateOf(t).Format(domain.DateFormat)
}

// IsBlocked true, если слот minutes на дату date занят
func (b BlockedSet) IsBlocked(date time.Time, minutes int) bool {
	day, ok := b[DateKey(date)]
	if !ok {
		return false
	}
	_, blocked := day[minutes]
	return blocked
}

// IsLabelBlocked как IsBlocked, но по метке времени
func (b BlockedSet) IsLabelBlocked(date time.Time, label types.TimeLabel) bool {
	m, err := label.Minutes()
	if err != nil || label.IsUnavailable() {
		return false
	}
	return b.IsBlocked(date, m)
}

// Labels занятые метки на дату в порядке возрастания
func (b BlockedSet) Labels(date time.Time) []types.TimeLabel {
	day := b[DateKey(date)]

	minutes := make([]int, 0, len(day))
	for m := range day {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	labels := make([]types.TimeLabel, len(minutes))
	for i, m := range minutes {
		labels[i] = types.FromMinutes(m)
	}
	return labels
}

// Dates даты, на которых есть занятые слоты, по возрастанию
func (b BlockedSet) Dates() []string {
	dates := make([]string, 0, len(b))
	for d, slots := range b {
		if len(slots) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

func (b BlockedSet) block(key string, minutes int) {
	day, ok := b[key]
	if !ok {
		day = make(map[int]struct{})
		b[key] = day
	}
	day[minutes] = struct{}{}
}

// ComputeBlockedTimesByDate строит множество занятых слотов по списку бронирований одной студии.
//
// Для каждого дня бронирования эффективный интервал:
//   - первый день: от времени начала бронирования
//   - последний день: до времени окончания бронирования
//   - промежуточные дни: от открытия до закрытия
//
// Слот занят, если он попадает в [начало, конец + буфер).
// Нераспознанные метки времени трактуются как "---:--" (бесконечность).
// Бронирования с датой окончания раньше даты начала пропускаются
func ComputeBlockedTimesByDate(bookings []*domain.Booking, s Schedule) BlockedSet {
	blocked := make(BlockedSet)
	slots := s.slotMinutes()

	for _, b := range bookings {
		if b == nil || b.StartDate.IsZero() {
			continue
		}

		startDate := domain.DateOf(b.StartDate)
		endDate := domain.DateOf(b.EffectiveEndDate())
		if endDate.Before(startDate) {
			continue
		}

		startMinutes := b.StartTime.MinutesOrUnavailable()
		endMinutes := b.EndTime.MinutesOrUnavailable()

		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
			effStart := s.OpenMinutes
			if day.Equal(startDate) {
				effStart = startMinutes
			}
			effEnd := s.CloseMinutes
			if day.Equal(endDate) {
				effEnd = endMinutes
			}

			limit := effEnd
			if effEnd != types.MinutesUnavailable {
				limit += s.BufferMinutes
			}

			key := day.Format(domain.DateFormat)
			for _, m := range slots {
				if m >= effStart && m < limit {
					blocked.block(key, m)
				}
			}
		}
	}

	return blocked
}

// Days даты от from до to включительно
func Days(from, to time.Time) []time.Time {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return []time.Time{}
	}

	days := make([]time.Time, 0, domain.DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayAvailability каталог слотов дня и занятые из них
func (s Schedule) DayAvailability(blocked BlockedSet, date time.Time) domain.DayAvailability {
	return domain.DayAvailability{
		Date:    domain.DateOf(date),
		Slots:   s.DailySlots(),
		Blocked: blocked.Labels(date),
	}
}
