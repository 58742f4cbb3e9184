package identityservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("identityservice client: client not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("identityservice client: staff not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")
)
