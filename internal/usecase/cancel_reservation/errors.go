package cancel_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда гость пытается отменить чужое бронирование
	ErrAccessDenied = errors.New("cancel_reservation: access denied")

	// ErrCannotCancel возвращается для терминальных статусов (cancelled, completed)
	ErrCannotCancel = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrVersionConflict возвращается при несовпадении версии
	// Вызывающий перечитывает бронирование и повторяет с актуальной версией
	ErrVersionConflict = errors.New("cancel_reservation: version conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
