package get_admin_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/api/middleware"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
	"github.com/inkfade/IFS-BookingService/pkg/ptr"
)

const (
	msgForbidden     = "доступ запрещен"
	msgInvalidFilter = "некорректные параметры фильтра"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
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

// Handle GET /api/v1/admin/appointments?status=&staffId=&history=&page=&perPage=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(middleware.HeaderUserRole) != middleware.RoleAdmin {
		h.logger.Warn("GET /admin/appointments - Access denied: user_id=%s", r.Header.Get(middleware.HeaderUserID))
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := parseQuery(r)

	result, err := h.service.GetAdminAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/appointments - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Fetched %d of %d appointments", len(result.Appointments), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery собирает фильтр из query-параметров
func parseQuery(r *http.Request) *models.GetAdminAppointmentsRequest {
	query := r.URL.Query()

	req := &models.GetAdminAppointmentsRequest{
		Page:    defaultPage,
		PerPage: defaultPerPage,
	}

	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if staffID := query.Get("staffId"); staffID != "" {
		req.StaffID = ptr.Ptr(staffID)
	}

	// history=true дает только завершенные записи, history=false только активные
	if history := query.Get("history"); history != "" {
		if value, err := strconv.ParseBool(history); err == nil {
			req.HistoryOnly = value
			req.ExcludeHistory = !value
		}
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		req.Page = page
	}

	if perPage, err := strconv.Atoi(query.Get("perPage")); err == nil && perPage > 0 {
		req.PerPage = perPage
	}

	return req
}
