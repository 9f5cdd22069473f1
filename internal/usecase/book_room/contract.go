package book_room

import (
	"context"
	"time"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований (Reservation Ledger)
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error)
	FindOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error)
}

// RoomRepository интерфейс справочника номеров
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator инвалидирует кэш занятых интервалов после записи
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, roomID int64) error
}

// MetricsRecorder счетчик исходов бронирования
type MetricsRecorder interface {
	ObserveReservationOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopInvalidator заглушка инвалидатора, когда кэш выключен
type NopInvalidator struct{}

// Invalidate ничего не делает
func (NopInvalidator) Invalidate(ctx context.Context, roomID int64) error {
	return nil
}

// NopMetrics заглушка метрик, когда метрики выключены
type NopMetrics struct{}

// ObserveReservationOutcome ничего не делает
func (NopMetrics) ObserveReservationOutcome(outcome string) {}
