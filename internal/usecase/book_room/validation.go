package book_room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/codehunter/hotelbooking/internal/domain"
	"github.com/codehunter/hotelbooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
// Отклоняет запрос до открытия транзакции
func validateRequest(req *Request) error {
	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotencyKey is required", ErrInvalidInput)
	}

	// Ключ идемпотентности генерируется клиентом как UUID
	if _, err := uuid.Parse(req.IdempotencyKey); err != nil {
		return fmt.Errorf("%w: idempotencyKey must be a valid UUID", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}

	if req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	return nil
}

// validateRange строит и валидирует интервал дат
func validateRange(req *Request) (domain.DateRange, error) {
	rng, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	return rng, nil
}

// validatePolicy проверяет интервал против политики бронирования
func validatePolicy(rng domain.DateRange, now time.Time, maxStayNights, advanceBookingDays int) error {
	today := types.NewDate(now)

	// Заезд не может быть в прошлом (сегодня - допустимо)
	if rng.CheckIn.Before(today) {
		return ErrDateInPast
	}

	nights, err := rng.Nights()
	if err != nil {
		return fmt.Errorf("%w: failed to calculate nights: %v", ErrInternal, err)
	}

	if nights > maxStayNights {
		return fmt.Errorf("%w: stay of %d nights exceeds limit of %d", ErrStayTooLong, nights, maxStayNights)
	}

	// Если advanceBookingDays = 0, нет ограничений на дату заезда
	if advanceBookingDays == 0 {
		return nil
	}

	maxCheckIn, err := today.AddDays(advanceBookingDays)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate booking window: %v", ErrInternal, err)
	}

	if rng.CheckIn.After(maxCheckIn) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
