package set_room_active

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/service/rooms/models"
)

type RoomService interface {
	SetActive(ctx context.Context, id int64, req *models.SetActiveRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
