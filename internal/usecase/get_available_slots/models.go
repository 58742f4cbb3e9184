package get_available_slots

import (
	"time"

	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StaffID string    // ID мастера
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date    time.Time // Дата, на которую запрашивались слоты
	StaffID string    // ID мастера
	Slots   []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала в каноническом виде, например "14:00"
	Display         string           // Время начала для отображения, например "2:00 PM"
	DurationMinutes int              // Длительность слота в минутах
}
