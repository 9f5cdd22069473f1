package domain

import "time"

// Room represents a hotel room in the inventory
// Неизменяемый справочник, кроме флага активности: номера деактивируются,
// но не удаляются, пока на них ссылаются бронирования
type Room struct {
	ID       int64
	Number   string
	Type     string
	Capacity int
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the room accepts new reservations
func (r *Room) IsBookable() bool {
	return r.Active
}
