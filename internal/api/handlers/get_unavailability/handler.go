package get_unavailability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
	"github.com/inkfade/IFS-BookingService/internal/service/schedule"
)

const (
	msgForbidden    = "доступ запрещен"
	msgInvalidInput = "некорректные параметры запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID := vars["staffId"]

	requesterID := r.Header.Get(middleware.HeaderUserID)
	isAdmin := r.Header.Get(middleware.HeaderUserRole) == middleware.RoleAdmin
	if !isAdmin && requesterID != staffID {
		h.logger.Warn("GET /staff/{id}/unavailability - Access denied: staff_id=%s, requester=%s", staffID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/unavailability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /staff/{id}/unavailability - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/unavailability - Fetched %d entries: staff_id=%s", len(result.Entries), staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
