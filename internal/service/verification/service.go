package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/infra/codestore"
	"github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
)

// codeDigits длина кода подтверждения
const codeDigits = 6

// Service сервис одноразовых кодов подтверждения
type Service struct {
	store        CodeStore
	notifyClient NotifyServiceClient
	codeTTL      time.Duration
	logger       Logger
}

// NewService создает новый экземпляр сервиса кодов подтверждения
func NewService(store CodeStore, notifyClient NotifyServiceClient, codeTTL time.Duration, logger Logger) *Service {
	return &Service{
		store:        store,
		notifyClient: notifyClient,
		codeTTL:      codeTTL,
		logger:       logger,
	}
}

// RequestCode генерирует код для пользователя, сохраняет его с TTL
// и отправляет через NotifyService. Повторный запрос перезаписывает
// предыдущий код.
func (s *Service) RequestCode(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("RequestCode: failed to generate code for user=%s: %v", userID, err)
		return fmt.Errorf("%w: failed to generate code: %v", ErrInternal, err)
	}

	if err := s.store.Put(ctx, userID, code); err != nil {
		s.logger.Error("RequestCode: failed to store code for user=%s: %v", userID, err)
		return fmt.Errorf("%w: failed to store code: %v", ErrInternal, err)
	}

	err = s.notifyClient.SendVerificationCode(ctx, notifyservice.VerificationMessage{
		RecipientID: userID,
		Code:        code,
		TTLSeconds:  int(s.codeTTL.Seconds()),
	})
	if err != nil {
		s.logger.Error("RequestCode: failed to send code to user=%s: %v", userID, err)
		return fmt.Errorf("%w: failed to send code: %v", ErrInternal, err)
	}

	s.logger.Info("RequestCode: code sent to user=%s", userID)
	return nil
}

// VerifyCode проверяет код пользователя. Код одноразовый: он извлекается
// из хранилища атомарно, поэтому и неверная попытка, и успешная проверка
// инвалидируют его.
func (s *Service) VerifyCode(ctx context.Context, userID, code string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	stored, err := s.store.Take(ctx, userID)
	if err != nil {
		if errors.Is(err, codestore.ErrCodeNotFound) {
			s.logger.Warn("VerifyCode: no active code for user=%s", userID)
			return ErrCodeMismatch
		}
		s.logger.Error("VerifyCode: store error for user=%s: %v", userID, err)
		return fmt.Errorf("%w: store error: %v", ErrInternal, err)
	}

	if stored != code {
		s.logger.Warn("VerifyCode: code mismatch for user=%s", userID)
		return ErrCodeMismatch
	}

	s.logger.Info("VerifyCode: user=%s verified", userID)
	return nil
}

// generateCode возвращает криптографически случайный цифровой код
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
