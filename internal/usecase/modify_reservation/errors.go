package modify_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_reservation: invalid input data")

	// ErrInvalidDateRange возвращается при некорректном новом интервале
	ErrInvalidDateRange = errors.New("modify_reservation: invalid date range")

	// ErrDateInPast возвращается, когда новая дата заезда уже прошла
	ErrDateInPast = errors.New("modify_reservation: check-in date is in the past")

	// ErrStayTooLong возвращается при превышении максимальной длительности проживания
	ErrStayTooLong = errors.New("modify_reservation: stay exceeds maximum length")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("modify_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда гость меняет чужое бронирование
	ErrAccessDenied = errors.New("modify_reservation: access denied")

	// ErrCannotModify возвращается для терминальных статусов (cancelled, completed)
	ErrCannotModify = errors.New("modify_reservation: reservation cannot be modified")

	// ErrVersionConflict возвращается при несовпадении версии
	ErrVersionConflict = errors.New("modify_reservation: version conflict")

	// ErrRoomUnavailable возвращается, когда новые даты заняты другим бронированием
	// Исходное бронирование остается нетронутым
	ErrRoomUnavailable = errors.New("modify_reservation: room is not available for new dates")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_reservation: internal error")
)
