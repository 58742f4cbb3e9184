package verification

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
)

// CodeStore интерфейс хранилища одноразовых кодов
type CodeStore interface {
	Put(ctx context.Context, userID, code string) error
	Take(ctx context.Context, userID string) (string, error)
}

// NotifyServiceClient интерфейс клиента NotifyService
type NotifyServiceClient interface {
	SendVerificationCode(ctx context.Context, m notifyservice.VerificationMessage) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
