package get_available_slots

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
