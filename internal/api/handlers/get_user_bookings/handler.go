package get_user_bookings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
)

const msgForbidden = "доступ запрещен"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	requesterID := r.Header.Get(middleware.HeaderUserID)
	isAdmin := r.Header.Get(middleware.HeaderUserRole) == middleware.RoleAdmin

	// Клиент видит только свою историю
	if !isAdmin && requesterID != userID {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: user_id=%s, requester=%s", userID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetClientAppointments(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/appointments - Failed: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Fetched %d appointments: user_id=%s", result.Total, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
