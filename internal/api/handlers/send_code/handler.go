package send_code

import (
	"errors"
	"net/http"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/service/verification"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры запроса"
)

// SendCodeRequest HTTP request model
type SendCodeRequest struct {
	UserID string `json:"userId"`
}

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/send-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/send-code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.RequestCode(r.Context(), req.UserID); err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidInput):
			h.logger.Warn("POST /auth/send-code - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/send-code - Failed: user_id=%s, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/send-code - Code sent: user_id=%s", req.UserID)
	handlers.RespondJSON(w, http.StatusAccepted, nil)
}
