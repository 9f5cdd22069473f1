package book_room

import (
	"time"

	bookRoom "github.com/codehunter/hotelbooking/internal/usecase/book_room"
	"github.com/codehunter/hotelbooking/pkg/types"
)

// BookRoomRequest HTTP request model
type BookRoomRequest struct {
	RoomID         int64   `json:"roomId"`
	CheckIn        string  `json:"checkIn"`  // "2026-09-15"
	CheckOut       string  `json:"checkOut"` // "2026-09-18"
	IdempotencyKey string  `json:"idempotencyKey"`
	Notes          *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64   `json:"id"`
	RoomID    int64   `json:"roomId"`
	GuestID   int64   `json:"guestId"`
	CheckIn   string  `json:"checkIn"`
	CheckOut  string  `json:"checkOut"`
	Status    string  `json:"status"`
	Version   int64   `json:"version"`
	Notes     *string `json:"notes,omitempty"`
	Replayed  bool    `json:"replayed"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Формат дат валидирует use case
func (r *BookRoomRequest) ToUseCaseRequest(guestID int64) *bookRoom.Request {
	return &bookRoom.Request{
		GuestID:        guestID,
		RoomID:         r.RoomID,
		CheckIn:        types.Date(r.CheckIn),
		CheckOut:       types.Date(r.CheckOut),
		IdempotencyKey: r.IdempotencyKey,
		Notes:          r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookRoom.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		RoomID:    resp.RoomID,
		GuestID:   resp.GuestID,
		CheckIn:   string(resp.CheckIn),
		CheckOut:  string(resp.CheckOut),
		Status:    resp.Status,
		Version:   resp.Version,
		Notes:     resp.Notes,
		Replayed:  resp.Replayed,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
