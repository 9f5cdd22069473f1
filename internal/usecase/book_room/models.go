package book_room

import (
	"time"

	"github.com/codehunter/hotelbooking/internal/domain"
	"github.com/codehunter/hotelbooking/pkg/types"
)

// Request модель запроса на бронирование номера
type Request struct {
	GuestID        int64      // ID гостя
	RoomID         int64      // ID номера
	CheckIn        types.Date // Дата заезда
	CheckOut       types.Date // Дата выезда (день выезда номер не занят)
	IdempotencyKey string     // Ключ идемпотентности (UUID, генерируется клиентом)
	Notes          *string    // Пожелания гостя (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID       int64
	RoomID   int64
	GuestID  int64
	CheckIn  types.Date
	CheckOut types.Date
	Status   string
	Version  int64
	Notes    *string

	// Replayed признак идемпотентного повтора: возвращено ранее созданное
	// бронирование, новая строка не создавалась
	Replayed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует domain модель в response
func fromDomain(res *domain.Reservation, replayed bool) *Response {
	return &Response{
		ID:        res.ID,
		RoomID:    res.RoomID,
		GuestID:   res.GuestID,
		CheckIn:   res.CheckIn,
		CheckOut:  res.CheckOut,
		Status:    string(res.Status),
		Version:   res.Version,
		Notes:     res.Notes,
		Replayed:  replayed,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}
