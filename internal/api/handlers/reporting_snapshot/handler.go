package reporting_snapshot

import (
	"errors"
	"net/http"

	"github.com/codehunter/hotelbooking/internal/api/handlers"
	"github.com/codehunter/hotelbooking/internal/service/reservations"
	"github.com/codehunter/hotelbooking/internal/service/reservations/models"
	"github.com/codehunter/hotelbooking/pkg/types"
)

const (
	msgInvalidPeriod = "некорректный период, ожидаются from и to в формате YYYY-MM-DD, from < to"
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

// Handle GET /api/v1/reporting/reservations?from=2026-09-01&to=2026-10-01
// Read-only срез для отчетов и AI-ассистента, запись через этот путь невозможна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.SnapshotRequest{
		From: types.Date(query.Get("from")),
		To:   types.Date(query.Get("to")),
	}

	snapshot, err := h.service.Snapshot(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reporting/reservations - Invalid period: from=%s, to=%s", req.From, req.To)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /reporting/reservations - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reporting/reservations - Snapshot: period=[%s, %s), %d reservations",
		snapshot.From, snapshot.To, len(snapshot.Reservations))
	handlers.RespondJSON(w, http.StatusOK, snapshot)
}
