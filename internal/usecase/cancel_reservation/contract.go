package cancel_reservation

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CancelCAS(ctx context.Context, id int64, expectedVersion int64, reason *string) error
}

// AvailabilityInvalidator инвалидирует кэш занятых интервалов после записи
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, roomID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
