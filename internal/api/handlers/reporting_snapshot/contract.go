package reporting_snapshot

import (
	"context"

	"github.com/codehunter/hotelbooking/internal/service/reservations/models"
)

type ReservationService interface {
	Snapshot(ctx context.Context, req *models.SnapshotRequest) (*models.SnapshotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
