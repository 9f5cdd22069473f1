package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	checkAvailability "github.com/codehunter/hotelbooking/internal/usecase/check_availability"
	"github.com/codehunter/hotelbooking/pkg/types"
)

const (
	msgInvalidRoomID    = "некорректный ID номера"
	msgInvalidDateRange = "некорректный интервал дат, ожидаются checkIn и checkOut в формате YYYY-MM-DD"
	msgRoomNotFound     = "номер не найден"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID    int64  `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Available bool   `json:"available"`
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

// Handle GET /api/v1/rooms/{roomId}/availability?checkIn=2026-09-15&checkOut=2026-09-18
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	req := &checkAvailability.Request{
		RoomID:   roomID,
		CheckIn:  types.Date(query.Get("checkIn")),
		CheckOut: types.Date(query.Get("checkOut")),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidDateRange),
			errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid request: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - room_id=%d, range=[%s, %s), available=%t",
		roomID, result.CheckIn, result.CheckOut, result.Available)
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		RoomID:    result.RoomID,
		CheckIn:   string(result.CheckIn),
		CheckOut:  string(result.CheckOut),
		Available: result.Available,
	})
}
