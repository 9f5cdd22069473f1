package modify_reservation

import (
	"time"

	modifyReservation "github.com/codehunter/hotelbooking/internal/usecase/modify_reservation"
	"github.com/codehunter/hotelbooking/pkg/types"
)

// ModifyDatesRequest HTTP request model
type ModifyDatesRequest struct {
	CheckIn         string `json:"checkIn"`  // "2026-09-20"
	CheckOut        string `json:"checkOut"` // "2026-09-23"
	ExpectedVersion int64  `json:"expectedVersion"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64  `json:"id"`
	RoomID    int64  `json:"roomId"`
	GuestID   int64  `json:"guestId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Status    string `json:"status"`
	Version   int64  `json:"version"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyDatesRequest) ToUseCaseRequest(reservationID, guestID int64) *modifyReservation.Request {
	return &modifyReservation.Request{
		ReservationID:   reservationID,
		GuestID:         guestID,
		NewCheckIn:      types.Date(r.CheckIn),
		NewCheckOut:     types.Date(r.CheckOut),
		ExpectedVersion: r.ExpectedVersion,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *modifyReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		RoomID:    resp.RoomID,
		GuestID:   resp.GuestID,
		CheckIn:   string(resp.CheckIn),
		CheckOut:  string(resp.CheckOut),
		Status:    resp.Status,
		Version:   resp.Version,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
