package create_room

import (
	"errors"
	"net/http"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	"github.com/codehunter/hotelbooking/internal/service/rooms"
	"github.com/codehunter/hotelbooking/internal/service/rooms/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные номера"
	msgDuplicateNumber    = "номер с таким номером комнаты уже существует"
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

// Handle POST /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrDuplicateNumber):
			h.logger.Warn("POST /rooms - Duplicate room number: number=%s", req.Number)
			handlers.RespondConflict(w, msgDuplicateNumber)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /rooms - Failed to create room: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms - Room created: room_id=%d, number=%s", room.ID, room.Number)
	handlers.RespondJSON(w, http.StatusCreated, room)
}
