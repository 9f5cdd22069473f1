package confirm_reservation

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatusCAS(ctx context.Context, id int64, fromStatus, toStatus domain.ReservationStatus, expectedVersion int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
