package cancel_reservation

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID   int64   // ID бронирования
	GuestID         int64   // ID гостя (владелец бронирования)
	ExpectedVersion int64   // Ожидаемая версия для optimistic concurrency
	Reason          *string // Причина отмены (опционально)
}

// Response модель ответа с результатом отмены
type Response struct {
	ReservationID int64
	Status        string
	Version       int64 // Версия после отмены
}
