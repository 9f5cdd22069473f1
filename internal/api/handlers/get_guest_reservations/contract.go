package get_guest_reservations

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/service/reservations/models"
)

type ReservationService interface {
	GetGuestReservations(ctx context.Context, req *models.GetGuestReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
