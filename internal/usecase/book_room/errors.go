package book_room

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_room: invalid input data")

	// ErrInvalidDateRange возвращается при нарушении инварианта checkIn < checkOut
	// или некорректном формате дат
	ErrInvalidDateRange = errors.New("book_room: invalid date range")

	// ErrDateInPast возвращается, когда дата заезда уже прошла
	ErrDateInPast = errors.New("book_room: check-in date is in the past")

	// ErrStayTooLong возвращается при превышении максимальной длительности проживания
	ErrStayTooLong = errors.New("book_room: stay exceeds maximum length")

	// ErrDateTooFarInFuture возвращается, когда заезд превышает окно advanceBookingDays
	ErrDateTooFarInFuture = errors.New("book_room: check-in is too far in the future")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("book_room: room not found")

	// ErrRoomInactive возвращается, когда номер выведен из эксплуатации
	ErrRoomInactive = errors.New("book_room: room is inactive")

	// ErrRoomUnavailable возвращается, когда номер занят на выбранные даты
	// Ожидаемый исход: вызывающий выбирает другие даты или номер
	ErrRoomUnavailable = errors.New("book_room: room is not available for these dates")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_room: internal error")
)
