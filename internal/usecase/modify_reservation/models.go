package modify_reservation

import (
	"time"

	"github.com/codehunter/hotelbooking/internal/domain"
	"github.com/codehunter/hotelbooking/pkg/types"
)

// Request модель запроса на перенос дат бронирования
type Request struct {
	ReservationID   int64
	GuestID         int64
	NewCheckIn      types.Date
	NewCheckOut     types.Date
	ExpectedVersion int64
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID        int64
	RoomID    int64
	GuestID   int64
	CheckIn   types.Date
	CheckOut  types.Date
	Status    string
	Version   int64
	UpdatedAt time.Time
}

// fromDomain собирает response из исходного бронирования и новых дат
func fromDomain(res *domain.Reservation, rng domain.DateRange, updatedAt time.Time) *Response {
	return &Response{
		ID:        res.ID,
		RoomID:    res.RoomID,
		GuestID:   res.GuestID,
		CheckIn:   rng.CheckIn,
		CheckOut:  rng.CheckOut,
		Status:    string(res.Status),
		Version:   res.Version + 1,
		UpdatedAt: updatedAt,
	}
}
