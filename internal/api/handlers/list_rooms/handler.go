package list_rooms

import (
	"net/http"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms?activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	list, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Retrieved %d rooms (activeOnly=%t)", len(list.Rooms), activeOnly)
	handlers.RespondJSON(w, http.StatusOK, list)
}
