package update_booking_status

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "неизвестный статус"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgNotElapsed         = "время записи еще не прошло"
	msgConcurrentUpdate   = "запись была изменена, повторите запрос"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.TransitionRequest{
		UserID:  r.Header.Get(middleware.HeaderUserID),
		IsAdmin: r.Header.Get(middleware.HeaderUserRole) == middleware.RoleAdmin,
		Status:  req.Status,
	}

	result, err := h.service.Transition(r.Context(), appointmentID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%s, user_id=%s",
				appointmentID, serviceReq.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid status: appointment_id=%s, status=%s",
				appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%s, status=%s",
				appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrNotElapsed):
			h.logger.Warn("PATCH /appointments/{id}/status - Not elapsed: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgNotElapsed)

		case errors.Is(err, appointments.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /appointments/{id}/status - Concurrent update: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Updated successfully: appointment_id=%s, status=%s",
		appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
