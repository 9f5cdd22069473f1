package types

import (
	"errors"
	"time"
)

// DateLayout формат даты YYYY-MM-DD
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDateFormat возвращается при некорректном формате даты
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Date дата с точностью до дня в формате "YYYY-MM-DD" (например, "2025-10-15")
// Бронирования работают с днями заезда/выезда, время суток не учитывается
type Date string

// NewDate создает Date из time.Time, отбрасывая время суток
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// NewDateFromString парсит строку в Date с валидацией формата
func NewDateFromString(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDateFormat
	}
	return Date(s), nil
}

// String возвращает строковое представление даты
func (d Date) String() string {
	return string(d)
}

// IsZero проверяет, что дата не задана
func (d Date) IsZero() bool {
	return d == ""
}

// Validate проверяет корректность формата даты
func (d Date) Validate() error {
	if _, err := time.Parse(DateLayout, string(d)); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

// Time возвращает дату как time.Time (полночь UTC)
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// AddDays возвращает дату, сдвинутую на days дней вперед (или назад при days < 0)
func (d Date) AddDays(days int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return NewDate(t.AddDate(0, 0, days)), nil
}

// Before проверяет, что дата строго раньше other
// Лексикографическое сравнение корректно для формата YYYY-MM-DD
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// After проверяет, что дата строго позже other
func (d Date) After(other Date) bool {
	return string(d) > string(other)
}

// Equal проверяет равенство дат
func (d Date) Equal(other Date) bool {
	return string(d) == string(other)
}

// DaysUntil возвращает количество дней от d до other
// Отрицательное значение означает, что other раньше d
func (d Date) DaysUntil(other Date) (int, error) {
	from, err := d.Time()
	if err != nil {
		return 0, err
	}
	to, err := other.Time()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// Max возвращает более позднюю из двух дат
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// Min возвращает более раннюю из двух дат
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}
