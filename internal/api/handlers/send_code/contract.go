package send_code

import "context"

type VerificationService interface {
	RequestCode(ctx context.Context, userID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
