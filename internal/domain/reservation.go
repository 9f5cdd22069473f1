package domain

import (
	"time"

	"github.com/codehunter/hotelbooking/pkg/types"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a room reservation in the system
type Reservation struct {
	ID      int64
	RoomID  int64
	GuestID int64

	CheckIn  types.Date
	CheckOut types.Date

	Status ReservationStatus

	// Ключ идемпотентности: повторная отправка с тем же ключом
	// возвращает исходное бронирование, а не создает дубликат
	IdempotencyKey string

	// Версия для optimistic concurrency: каждое изменение инкрементирует
	Version int64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range возвращает интервал дат бронирования
func (r *Reservation) Range() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// IsActive returns true if the reservation blocks room availability
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are allowed
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeModified returns true if the reservation dates can be changed
func (r *Reservation) CanBeModified() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода статуса
// Переходы монотонны: pending→confirmed→completed, pending|confirmed→cancelled
// Из терминальных статусов (cancelled, completed) переходов нет
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch r.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// OverlapFilter фильтр для поиска пересекающихся бронирований
type OverlapFilter struct {
	RoomID int64
	Range  DateRange

	// ExcludeReservationID исключает бронирование из поиска
	// Используется при переносе дат: бронирование не конфликтует само с собой
	ExcludeReservationID *int64
}

// GuestReservationsFilter фильтр для получения бронирований гостя
type GuestReservationsFilter struct {
	GuestID int64
	Status  *ReservationStatus // опционально, nil - все статусы
}
