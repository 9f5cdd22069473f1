package reservations

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByGuest(ctx context.Context, filter domain.GuestReservationsFilter) ([]*domain.Reservation, error)
	ListConfirmedBetween(ctx context.Context, rng domain.DateRange) ([]*domain.Reservation, error)
	UpdateStatusCAS(ctx context.Context, id int64, from, to domain.ReservationStatus, expectedVersion int64) error
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
