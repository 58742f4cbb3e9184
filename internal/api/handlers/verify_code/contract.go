package verify_code

import "context"

type VerificationService interface {
	VerifyCode(ctx context.Context, userID, code string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
