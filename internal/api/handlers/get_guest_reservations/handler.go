package get_guest_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	"github.com/codehunter/hotelbooking/internal/api/middleware"
	"github.com/codehunter/hotelbooking/internal/service/reservations"
	"github.com/codehunter/hotelbooking/internal/service/reservations/models"
)

const (
	msgInvalidGuestID = "некорректный ID гостя"
	msgMissingGuestID = "отсутствует ID гостя"
	msgForbidden      = "доступ запрещен"
	msgInvalidStatus  = "некорректный статус в фильтре"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/guests/{guestId}/reservations?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guestID, err := strconv.ParseInt(vars["guestId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /guests/{id}/reservations - Invalid guest ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuestID)
		return
	}

	authGuestID, ok := middleware.GetGuestID(r.Context())
	if !ok {
		h.logger.Warn("GET /guests/{id}/reservations - Missing guest ID")
		handlers.RespondUnauthorized(w, msgMissingGuestID)
		return
	}

	// Гость видит только свою историю
	if guestID != authGuestID {
		h.logger.Warn("GET /guests/{id}/reservations - Access denied: path_guest=%d, auth_guest=%d",
			guestID, authGuestID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetGuestReservationsRequest{GuestID: guestID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetGuestReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("GET /guests/{id}/reservations - Invalid status filter: guest_id=%d", guestID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /guests/{id}/reservations - Failed: guest_id=%d, error=%v", guestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guests/{id}/reservations - Retrieved %d reservations: guest_id=%d",
		len(list.Reservations), guestID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
