package check_availability

import (
	"github.com/codehunter/hotelbooking/pkg/types"
)

// Request модель запроса проверки доступности номера
type Request struct {
	RoomID   int64
	CheckIn  types.Date
	CheckOut types.Date
}

// Response модель ответа проверки доступности
type Response struct {
	RoomID    int64
	CheckIn   types.Date
	CheckOut  types.Date
	Available bool
}

// OccupiedRange занятый интервал в ответе (check-out не включается)
type OccupiedRange struct {
	CheckIn  types.Date
	CheckOut types.Date
}

// OccupiedRangesResponse модель ответа со списком занятых интервалов номера
type OccupiedRangesResponse struct {
	RoomID int64
	Ranges []OccupiedRange
}
