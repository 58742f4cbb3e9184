package create_booking

import (
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  string                 // ID клиента
	StaffID   string                 // ID мастера
	Service   domain.ServiceCategory // Категория услуги
	Date      time.Time              // Дата записи (без времени)
	StartTime types.TimeString       // Время начала слота (например, "10:00")
	Remarks   *string                // Пожелания клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          string                   // Системный ID записи (UUID)
	DisplayCode string                   // Публичный номер записи (например, "APT-000042")
	ClientID    string                   // ID клиента
	StaffID     string                   // ID мастера
	Service     domain.ServiceCategory   // Категория услуги
	Date        time.Time                // Дата записи
	StartTime   types.TimeString         // Время начала
	Display     string                   // Время начала для отображения
	Status      domain.AppointmentStatus // Статус записи

	// Денормализованные данные
	ClientName string // Имя клиента
	StaffName  string // Имя мастера
	Remarks    *string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
