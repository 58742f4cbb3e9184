package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/domain"
	getAvailableSlots "github.com/inkfade/IFS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound = "мастер не найден"
	msgDateInPast    = "дата уже прошла"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID := vars["staffId"]

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StaffID: staffID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/available-slots - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /staff/{id}/available-slots - Date in past: staff_id=%s", staffID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /staff/{id}/available-slots - Failed: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/available-slots - Returned %d slots: staff_id=%s", len(result.Slots), staffID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
