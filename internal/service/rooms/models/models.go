package models

import (
	"time"

	"github.com/codehunter/hotelbooking/internal/domain"
)

// Request модели

// CreateRoomRequest запрос на создание номера
type CreateRoomRequest struct {
	Number   string `json:"number"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

// SetActiveRequest запрос на включение/выключение номера из инвентаря
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// Response модели

// RoomResponse ответ с данными номера
type RoomResponse struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomListResponse ответ со списком номеров
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	return &RoomResponse{
		ID:        r.ID,
		Number:    r.Number,
		Type:      r.Type,
		Capacity:  r.Capacity,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(list []*domain.Room) *RoomListResponse {
	if list == nil {
		return &RoomListResponse{Rooms: []RoomResponse{}}
	}

	resp := &RoomListResponse{Rooms: make([]RoomResponse, len(list))}
	for i, r := range list {
		if item := FromDomainRoom(r); item != nil {
			resp.Rooms[i] = *item
		}
	}
	return resp
}
