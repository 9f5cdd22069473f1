package domain

import (
	"fmt"

	"github.com/codehunter/hotelbooking/pkg/types"
)

// DateRange полуоткрытый интервал дат [CheckIn, CheckOut) с точностью до дня
// День выезда не занимает номер: бронирование [Jan1, Jan5) и [Jan5, Jan8) не пересекаются
type DateRange struct {
	CheckIn  types.Date
	CheckOut types.Date
}

// NewDateRange создает DateRange с валидацией
func NewDateRange(checkIn, checkOut types.Date) (DateRange, error) {
	r := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate проверяет формат дат и инвариант CheckIn < CheckOut
func (r DateRange) Validate() error {
	if err := r.CheckIn.Validate(); err != nil {
		return fmt.Errorf("check-in: %w", err)
	}
	if err := r.CheckOut.Validate(); err != nil {
		return fmt.Errorf("check-out: %w", err)
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return ErrCheckOutBeforeCheckIn
	}
	return nil
}

// Overlaps проверяет пересечение двух интервалов
// Интервалы пересекаются, если max(startA, startB) < min(endA, endB)
// Граничные случаи (выезд одного в день заезда другого) пересечением НЕ считаются
func (r DateRange) Overlaps(other DateRange) bool {
	start := types.Max(r.CheckIn, other.CheckIn)
	end := types.Min(r.CheckOut, other.CheckOut)
	return start.Before(end)
}

// Contains проверяет, что день d занят этим интервалом
func (r DateRange) Contains(d types.Date) bool {
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Nights возвращает количество ночей в интервале
func (r DateRange) Nights() (int, error) {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

// String возвращает представление вида "[2025-01-01, 2025-01-05)"
func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.CheckIn, r.CheckOut)
}
