package verify_code

import (
	"errors"
	"net/http"

	"github.com/inkfade/IFS-BookingService/internal/api/handlers"
	"github.com/inkfade/IFS-BookingService/internal/service/verification"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры запроса"
	msgCodeMismatch       = "неверный или истекший код подтверждения"
)

// VerifyCodeRequest HTTP request model
type VerifyCodeRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// VerifyCodeResponse HTTP response model
type VerifyCodeResponse struct {
	Verified bool `json:"verified"`
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

// Handle POST /api/v1/auth/verify-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/verify-code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.VerifyCode(r.Context(), req.UserID, req.Code); err != nil {
		switch {
		case errors.Is(err, verification.ErrCodeMismatch):
			h.logger.Warn("POST /auth/verify-code - Code mismatch: user_id=%s", req.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCodeMismatch)

		case errors.Is(err, verification.ErrInvalidInput):
			h.logger.Warn("POST /auth/verify-code - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/verify-code - Failed: user_id=%s, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/verify-code - Verified: user_id=%s", req.UserID)
	handlers.RespondJSON(w, http.StatusOK, &VerifyCodeResponse{Verified: true})
}
