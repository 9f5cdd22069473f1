package confirm_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("confirm_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда гость подтверждает чужое бронирование
	ErrAccessDenied = errors.New("confirm_reservation: access denied")

	// ErrInvalidTransition возвращается, когда бронирование не в статусе pending
	ErrInvalidTransition = errors.New("confirm_reservation: reservation is not pending")

	// ErrVersionConflict возвращается при несовпадении версии
	ErrVersionConflict = errors.New("confirm_reservation: version conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)
