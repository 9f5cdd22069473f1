package confirm_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	"github.com/codehunter/hotelbooking/internal/api/middleware"
	confirmReservation "github.com/codehunter/hotelbooking/internal/usecase/confirm_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingGuestID       = "отсутствует ID гостя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "бронирование нельзя подтвердить в текущем статусе"
	msgVersionConflict      = "версия бронирования устарела, перечитайте и повторите"
)

// ConfirmRequest HTTP request model
type ConfirmRequest struct {
	ExpectedVersion int64 `json:"expectedVersion"`
}

// ConfirmResponse HTTP response model
type ConfirmResponse struct {
	ReservationID int64  `json:"reservationId"`
	Status        string `json:"status"`
	Version       int64  `json:"version"`
}

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	guestID, ok := middleware.GetGuestID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Missing guest ID")
		handlers.RespondUnauthorized(w, msgMissingGuestID)
		return
	}

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{
		ReservationID:   reservationID,
		GuestID:         guestID,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Access denied: reservation_id=%d, guest_id=%d",
				reservationID, guestID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmReservation.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, confirmReservation.ErrVersionConflict):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Version conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, confirmReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/confirm - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/confirm - Confirmed: reservation_id=%d, version=%d",
		result.ReservationID, result.Version)
	handlers.RespondJSON(w, http.StatusOK, &ConfirmResponse{
		ReservationID: result.ReservationID,
		Status:        result.Status,
		Version:       result.Version,
	})
}
