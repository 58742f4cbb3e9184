package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments"
)

const (
	msgNotFound  = "запись не найдена"
	msgForbidden = "доступ запрещен"
)

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

// Handle GET /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	userID := r.Header.Get(middleware.HeaderUserID)
	isAdmin := r.Header.Get(middleware.HeaderUserRole) == middleware.RoleAdmin

	result, err := h.service.GetByID(r.Context(), appointmentID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id} - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /appointments/{id} - Access denied: appointment_id=%s, user_id=%s", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /appointments/{id} - Failed: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id} - Fetched successfully: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
