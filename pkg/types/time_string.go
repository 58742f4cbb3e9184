package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Format24Hour канонический формат времени слота (HH:MM, 24 часа)
	Format24Hour = "15:04"

	// Format12Hour отображаемый формат времени слота (например, "9:00 AM")
	Format12Hour = "3:04 PM"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")
)

// TimeString время суток в каноническом 24-часовом представлении "HH:MM".
// Слоты сравниваются только по каноническому значению, поэтому "02:00 PM"
// и "14:00" считаются одним и тем же временем.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(Format24Hour))
}

// NewTimeStringFromString парсит время из строки.
// Принимает как каноническое 24-часовое ("14:00"), так и 12-часовое
// представление ("2:00 PM", "02:00 pm"); результат всегда канонический.
func NewTimeStringFromString(s string) (TimeString, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", ErrInvalidTimeString
	}

	if t, err := time.Parse(Format24Hour, raw); err == nil {
		return NewTimeString(t), nil
	}

	upper := strings.ToUpper(raw)
	for _, layout := range []string{"3:04 PM", "03:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, upper); err == nil {
			return NewTimeString(t), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// String возвращает каноническое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// Display возвращает 12-часовое представление для отображения ("9:00 AM")
func (ts TimeString) Display() string {
	t, err := time.Parse(Format24Hour, string(ts))
	if err != nil {
		return string(ts)
	}
	return t.Format(Format12Hour)
}

// IsZero проверяет, что время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет, что значение является корректным каноническим временем
func (ts TimeString) Validate() error {
	if _, err := time.Parse(Format24Hour, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Equal сравнивает два времени по каноническому значению
func (ts TimeString) Equal(other TimeString) bool {
	return string(ts) == string(other)
}

// IsBefore проверяет, что время строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter проверяет, что время строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(Format24Hour, string(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return NewTimeString(t.Add(time.Duration(minutes) * time.Minute)), nil
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*ts = TimeString(v)
	case []byte:
		*ts = TimeString(v)
	case nil:
		*ts = ""
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	return nil
}
