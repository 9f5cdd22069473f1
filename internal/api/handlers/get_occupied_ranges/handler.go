package get_occupied_ranges

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	checkAvailability "github.com/codehunter/hotelbooking/internal/usecase/check_availability"
)

const (
	msgInvalidRoomID = "некорректный ID номера"
	msgRoomNotFound  = "номер не найден"
)

// OccupiedRange занятый интервал в HTTP ответе
type OccupiedRange struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// OccupiedRangesResponse HTTP response model
type OccupiedRangesResponse struct {
	RoomID int64           `json:"roomId"`
	Ranges []OccupiedRange `json:"ranges"`
}

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/occupied-ranges
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/occupied-ranges - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	result, err := h.useCase.OccupiedRanges(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/occupied-ranges - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/occupied-ranges - Invalid input: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgInvalidRoomID)

		default:
			h.logger.Error("GET /rooms/{id}/occupied-ranges - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &OccupiedRangesResponse{
		RoomID: result.RoomID,
		Ranges: make([]OccupiedRange, 0, len(result.Ranges)),
	}
	for _, rng := range result.Ranges {
		response.Ranges = append(response.Ranges, OccupiedRange{
			CheckIn:  string(rng.CheckIn),
			CheckOut: string(rng.CheckOut),
		})
	}

	h.logger.Info("GET /rooms/{id}/occupied-ranges - room_id=%d, %d range(s)", roomID, len(response.Ranges))
	handlers.RespondJSON(w, http.StatusOK, response)
}
