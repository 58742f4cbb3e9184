package create_booking

import (
	"errors"
	"net/http"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	createBooking "github.com/inkfade/IFS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры записи"
	msgSlotNotAvailable   = "выбранный временной слот уже занят"
	msgFrequencyLimit     = "у вас уже есть запись на эту услугу в ближайшие две недели"
	msgClientNotFound     = "клиент не найден"
	msgStaffNotFound      = "мастер не найден"
	msgStaffCannotFulfil  = "мастер не выполняет эту услугу"
	msgStudioClosed       = "студия закрыта в выбранную дату"
	msgInvalidDate        = "некорректная дата записи"
	msgInvalidTimeSlot    = "некорректный временной слот"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%s, staff_id=%s", req.ClientID, req.StaffID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrFrequencyLimitExceeded):
			h.logger.Warn("POST /appointments - Frequency limit exceeded: client_id=%s, service=%s", req.ClientID, req.Service)
			handlers.RespondConflict(w, msgFrequencyLimit)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /appointments - Client not found: client_id=%s", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrStaffCannotFulfil):
			h.logger.Warn("POST /appointments - Staff cannot fulfil: staff_id=%s, service=%s", req.StaffID, req.Service)
			handlers.RespondBadRequest(w, msgStaffCannotFulfil)

		case errors.Is(err, createBooking.ErrStudioClosed):
			h.logger.Warn("POST /appointments - Studio closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgStudioClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: client_id=%s, date=%s", req.ClientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: client_id=%s, time=%s", req.ClientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%s, staff_id=%s, error=%v",
				req.ClientID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: id=%s, code=%s, client_id=%s",
		result.ID, result.DisplayCode, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
