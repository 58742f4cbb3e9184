package schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrInvalidTime возвращается при некорректном времени блокировки
	ErrInvalidTime = errors.New("invalid blackout time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
