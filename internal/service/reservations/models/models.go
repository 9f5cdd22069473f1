package models

import (
	"errors"
	"time"

	"github.com/codehunter/hotelbooking/internal/domain"
	"github.com/codehunter/hotelbooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetGuestReservationsRequest запрос на получение бронирований гостя
type GetGuestReservationsRequest struct {
	GuestID int64   `json:"guestId"`
	Status  *string `json:"status,omitempty"`
}

// CompleteReservationRequest запрос на завершение проживания
type CompleteReservationRequest struct {
	GuestID         int64 `json:"guestId"`
	ExpectedVersion int64 `json:"expectedVersion"`
}

// SnapshotRequest запрос read-only среза бронирований за период
type SnapshotRequest struct {
	From types.Date `json:"from"`
	To   types.Date `json:"to"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID       int64  `json:"id"`
	RoomID   int64  `json:"roomId"`
	GuestID  int64  `json:"guestId"`
	CheckIn  string `json:"checkIn"`  // "2026-09-15"
	CheckOut string `json:"checkOut"` // "2026-09-18"
	Status   string `json:"status"`
	Version  int64  `json:"version"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// SnapshotRoom номер в отчетном срезе
type SnapshotRoom struct {
	ID       int64  `json:"id"`
	Number   string `json:"number"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

// SnapshotResponse read-only срез состояния бронирований за период
// Отдается внешним read-only потребителям (отчеты, AI-ассистент), которые
// никогда не пишут в систему напрямую
type SnapshotResponse struct {
	From         string                `json:"from"`
	To           string                `json:"to"`
	GeneratedAt  time.Time             `json:"generatedAt"`
	Rooms        []SnapshotRoom        `json:"rooms"`
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		RoomID:             r.RoomID,
		GuestID:            r.GuestID,
		CheckIn:            string(r.CheckIn),
		CheckOut:           string(r.CheckOut),
		Status:             string(r.Status),
		Version:            r.Version,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	if list == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(list)),
	}

	for i, r := range list {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations[i] = *item
		}
	}

	return resp
}

// FromDomainRoom конвертирует domain номер в DTO среза
func FromDomainRoom(r *domain.Room) SnapshotRoom {
	return SnapshotRoom{
		ID:       r.ID,
		Number:   r.Number,
		Type:     r.Type,
		Capacity: r.Capacity,
		Active:   r.Active,
	}
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
