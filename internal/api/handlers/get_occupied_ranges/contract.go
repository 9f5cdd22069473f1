package get_occupied_ranges

import (
	"context"

	checkAvailability "github.com/codehunter/hotelbooking/internal/usecase/check_availability"
)

type CheckAvailabilityUseCase interface {
	OccupiedRanges(ctx context.Context, roomID int64) (*checkAvailability.OccupiedRangesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
