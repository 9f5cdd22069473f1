package check_availability

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error)
	OccupiedRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error)
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// AvailabilityCache кэш занятых интервалов для read-only запросов
type AvailabilityCache interface {
	GetRanges(ctx context.Context, roomID int64) ([]domain.DateRange, error)
	SetRanges(ctx context.Context, roomID int64, ranges []domain.DateRange) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
