package set_unavailability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
	"github.com/inkfade/IFS-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgStaffNotFound      = "мастер не найден"
	msgInvalidTime        = "некорректный формат времени"
	msgInvalidInput       = "некорректные параметры запроса"
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

// Handle POST /api/v1/staff/{staffId}/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID := vars["staffId"]

	// Расписание меняют сам мастер или администратор
	requesterID := r.Header.Get(middleware.HeaderUserID)
	isAdmin := r.Header.Get(middleware.HeaderUserRole) == middleware.RoleAdmin
	if !isAdmin && requesterID != staffID {
		h.logger.Warn("POST /staff/{id}/unavailability - Access denied: staff_id=%s, requester=%s", staffID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req SetUnavailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/unavailability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.SetBlackouts(r.Context(), req.ToServiceRequest(staffID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/unavailability - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, schedule.ErrInvalidTime):
			h.logger.Warn("POST /staff/{id}/unavailability - Invalid time: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/unavailability - Invalid input: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /staff/{id}/unavailability - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/unavailability - Updated successfully: staff_id=%s, date=%s", staffID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
