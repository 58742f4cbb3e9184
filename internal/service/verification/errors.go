package verification

import "errors"

var (
	// ErrCodeMismatch возвращается, когда код не совпадает, отсутствует
	// или истек
	ErrCodeMismatch = errors.New("verification code is invalid or expired")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
