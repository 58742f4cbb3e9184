package create_booking

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrStaffCannotFulfil возвращается, когда специализация мастера не
	// соответствует запрошенной услуге
	ErrStaffCannotFulfil = errors.New("create_booking: staff cannot fulfil this service")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_booking: invalid appointment date")

	// ErrStudioClosed возвращается, когда студия закрыта в указанную дату
	ErrStudioClosed = errors.New("create_booking: studio is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrFrequencyLimitExceeded возвращается, когда у клиента уже есть
	// неотмененная запись на эту услугу в скользящем окне
	ErrFrequencyLimitExceeded = errors.New("create_booking: repeat-booking limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
