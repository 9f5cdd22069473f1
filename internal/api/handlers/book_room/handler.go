package book_room

import (
	"errors"
	"net/http"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	"github.com/codehunter/hotelbooking/internal/api/middleware"
	bookRoom "github.com/codehunter/hotelbooking/internal/usecase/book_room"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingGuestID     = "отсутствует ID гостя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidDateRange   = "некорректный интервал дат, ожидается checkIn < checkOut в формате YYYY-MM-DD"
	msgDateInPast         = "дата заезда уже прошла"
	msgStayTooLong        = "превышена максимальная длительность проживания"
	msgDateTooFar         = "дата заезда слишком далеко в будущем"
	msgRoomNotFound       = "номер не найден"
	msgRoomInactive       = "номер выведен из эксплуатации"
	msgRoomUnavailable    = "номер занят на выбранные даты"
)

type Handler struct {
	useCase BookRoomUseCase
	logger  Logger
}

func NewHandler(useCase BookRoomUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	guestID, ok := middleware.GetGuestID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing guest ID")
		handlers.RespondUnauthorized(w, msgMissingGuestID)
		return
	}

	var req BookRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(guestID))
	if err != nil {
		switch {
		case errors.Is(err, bookRoom.ErrRoomUnavailable):
			h.logger.Warn("POST /reservations - Room unavailable: guest_id=%d, room_id=%d", guestID, req.RoomID)
			handlers.RespondConflict(w, msgRoomUnavailable)

		case errors.Is(err, bookRoom.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, bookRoom.ErrRoomInactive):
			h.logger.Warn("POST /reservations - Room inactive: room_id=%d", req.RoomID)
			handlers.RespondConflict(w, msgRoomInactive)

		case errors.Is(err, bookRoom.ErrInvalidDateRange):
			h.logger.Warn("POST /reservations - Invalid date range: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, bookRoom.ErrDateInPast):
			h.logger.Warn("POST /reservations - Check-in in the past: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookRoom.ErrStayTooLong):
			h.logger.Warn("POST /reservations - Stay too long: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, bookRoom.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, bookRoom.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: guest_id=%d, error=%v", guestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to book room: guest_id=%d, room_id=%d, error=%v",
				guestID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Идемпотентный повтор возвращает ранее созданное бронирование с 200,
	// новое бронирование отдается с 201
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		h.logger.Info("POST /reservations - Idempotent replay: reservation_id=%d, guest_id=%d", result.ID, guestID)
	} else {
		h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, guest_id=%d, room_id=%d",
			result.ID, guestID, req.RoomID)
	}

	handlers.RespondJSON(w, status, response)
}
