package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
)

const (
	msgNotFound         = "запись не найдена"
	msgForbidden        = "доступ запрещен"
	msgCannotCancel     = "запись не может быть отменена"
	msgConcurrentUpdate = "запись была изменена, повторите запрос"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	req := &models.CancelRequest{
		UserID:  r.Header.Get(middleware.HeaderUserID),
		IsAdmin: r.Header.Get(middleware.HeaderUserRole) == middleware.RoleAdmin,
	}

	result, err := h.service.Cancel(r.Context(), appointmentID, req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, appointments.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Concurrent update: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Cancelled successfully: appointment_id=%s, user_id=%s",
		appointmentID, req.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
