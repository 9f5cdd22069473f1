package modify_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	"github.com/codehunter/hotelbooking/internal/api/middleware"
	modifyReservation "github.com/codehunter/hotelbooking/internal/usecase/modify_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingGuestID       = "отсутствует ID гостя"
	msgInvalidDateRange     = "некорректный интервал дат, ожидается checkIn < checkOut в формате YYYY-MM-DD"
	msgDateInPast           = "новая дата заезда уже прошла"
	msgStayTooLong          = "превышена максимальная длительность проживания"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotModify         = "бронирование нельзя перенести в текущем статусе"
	msgVersionConflict      = "версия бронирования устарела, перечитайте и повторите"
	msgRoomUnavailable      = "номер занят на новые даты, бронирование не изменено"
)

type Handler struct {
	useCase ModifyReservationUseCase
	logger  Logger
}

func NewHandler(useCase ModifyReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id}/dates - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	guestID, ok := middleware.GetGuestID(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id}/dates - Missing guest ID")
		handlers.RespondUnauthorized(w, msgMissingGuestID)
		return
	}

	var req ModifyDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id}/dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID, guestID))
	if err != nil {
		switch {
		case errors.Is(err, modifyReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id}/dates - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyReservation.ErrAccessDenied):
			h.logger.Warn("PUT /reservations/{id}/dates - Access denied: reservation_id=%d, guest_id=%d",
				reservationID, guestID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyReservation.ErrCannotModify):
			h.logger.Warn("PUT /reservations/{id}/dates - Cannot modify: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotModify)

		case errors.Is(err, modifyReservation.ErrVersionConflict):
			h.logger.Warn("PUT /reservations/{id}/dates - Version conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, modifyReservation.ErrRoomUnavailable):
			h.logger.Warn("PUT /reservations/{id}/dates - Room unavailable for new dates: reservation_id=%d",
				reservationID)
			handlers.RespondConflict(w, msgRoomUnavailable)

		case errors.Is(err, modifyReservation.ErrInvalidDateRange):
			h.logger.Warn("PUT /reservations/{id}/dates - Invalid date range: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, modifyReservation.ErrDateInPast):
			h.logger.Warn("PUT /reservations/{id}/dates - Date in past: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, modifyReservation.ErrStayTooLong):
			h.logger.Warn("PUT /reservations/{id}/dates - Stay too long: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, modifyReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id}/dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /reservations/{id}/dates - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id}/dates - Dates updated: reservation_id=%d, range=[%s, %s), version=%d",
		result.ID, result.CheckIn, result.CheckOut, result.Version)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
