package domain

import "errors"

// Default booking policy values
const (
	DefaultMaxStayNights      = 30
	DefaultAdvanceBookingDays = 365 // 0 = unlimited
)

// Business validation constants
const (
	MinStayNights  = 1
	MaxNotesLength = 500

	MaxCancellationReasonLength = 500
)

// ConfirmMode режим подтверждения бронирования (policy)
type ConfirmMode string

const (
	// ConfirmModeDirect бронирование сразу создается со статусом confirmed
	ConfirmModeDirect ConfirmMode = "direct"

	// ConfirmModeTwoPhase бронирование создается pending и требует
	// отдельного шага подтверждения (pending→confirmed)
	ConfirmModeTwoPhase ConfirmMode = "two_phase"
)

// ErrCheckOutBeforeCheckIn возвращается при нарушении инварианта checkIn < checkOut
var ErrCheckOutBeforeCheckIn = errors.New("domain: check-out must be after check-in")

// ActiveStatuses статусы бронирований, блокирующих доступность номера
// Используется в запросах поиска пересечений
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// InitialStatus возвращает статус нового бронирования для режима подтверждения
func (m ConfirmMode) InitialStatus() ReservationStatus {
	if m == ConfirmModeTwoPhase {
		return StatusPending
	}
	return StatusConfirmed
}

// Valid проверяет, что режим подтверждения известен
func (m ConfirmMode) Valid() bool {
	return m == ConfirmModeDirect || m == ConfirmModeTwoPhase
}
