package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unavailable метка "нет значения" (используется вместо времени, когда время неизвестно)
const Unavailable TimeLabel = "---:--"

// MinutesUnavailable числовое значение Unavailable: больше любого реального значения минут
const MinutesUnavailable = math.MaxInt32

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeLabel возвращается при некорректном формате метки времени
	ErrInvalidTimeLabel = errors.New("types: invalid time label, expected h:mm AM|PM")
)

// TimeLabel метка времени в 12-часовом формате, например "2:30 PM"
type TimeLabel string

// ParseTimeLabel разбирает строку вида "h:mm AM|PM" (или сентинел "---:--")
// и возвращает нормализованную метку
func ParseTimeLabel(s string) (TimeLabel, error) {
	s = strings.TrimSpace(s)
	if s == string(Unavailable) {
		return Unavailable, nil
	}

	m, err := parseMinutes(s)
	if err != nil {
		return "", err
	}

	return FromMinutes(m), nil
}

// MustParseTimeLabel как ParseTimeLabel, но паникует при ошибке. Только для констант и тестов
func MustParseTimeLabel(s string) TimeLabel {
	l, err := ParseTimeLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// FromMinutes конвертирует минуты от полуночи в метку.
// Значения вне [0, 1440) дают Unavailable
func FromMinutes(m int) TimeLabel {
	if m < 0 || m >= MinutesPerDay {
		return Unavailable
	}

	hours := m / 60
	minutes := m % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}

	h := hours % 12
	if h == 0 {
		h = 12
	}

	return TimeLabel(fmt.Sprintf("%d:%02d %s", h, minutes, period))
}

// Minutes возвращает количество минут от полуночи.
// Для Unavailable возвращает MinutesUnavailable без ошибки
func (t TimeLabel) Minutes() (int, error) {
	if t.IsUnavailable() {
		return MinutesUnavailable, nil
	}
	return parseMinutes(strings.TrimSpace(string(t)))
}

// MinutesOrUnavailable как Minutes, но нераспознанная метка трактуется как Unavailable
func (t TimeLabel) MinutesOrUnavailable() int {
	m, err := t.Minutes()
	if err != nil {
		return MinutesUnavailable
	}
	return m
}

// IsUnavailable true для сентинела "---:--"
func (t TimeLabel) IsUnavailable() bool {
	return strings.TrimSpace(string(t)) == string(Unavailable)
}

// IsZero true для пустой метки
func (t TimeLabel) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// String возвращает строковое представление
func (t TimeLabel) String() string {
	return string(t)
}

// Scan реализует sql.Scanner
func (t *TimeLabel) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeLabel(v)
	case []byte:
		*t = TimeLabel(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeLabel", value)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeLabel) Value() (driver.Value, error) {
	return string(t), nil
}

// UnmarshalJSON принимает строку и проверяет формат
func (t *TimeLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*t = ""
		return nil
	}

	parsed, err := ParseTimeLabel(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseMinutes(s string) (int, error) {
	clock, period, ok := strings.Cut(s, " ")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}
	period = strings.ToUpper(strings.TrimSpace(period))

	hStr, mStr, ok := strings.Cut(clock, ":")
	if !ok || len(mStr) != 2 || hStr == "" || len(hStr) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}

	h, err := strconv.Atoi(hStr)
	if err != nil || h < 1 || h > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}
	m, err := strconv.Atoi(mStr)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}

	switch period {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}

	return h*60 + m, nil
}
