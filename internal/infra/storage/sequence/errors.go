package sequence

import "errors"

var (
	// ErrUnknownSequence возвращается при обращении к несуществующему счетчику
	ErrUnknownSequence = errors.New("sequence.repository: unknown sequence name")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sequence.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("sequence.repository: failed to execute query")
)
