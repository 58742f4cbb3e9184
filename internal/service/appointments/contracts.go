package appointments

import (
	"context"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AdminAppointmentsFilter) ([]*domain.Appointment, error)
	CountWithFilter(ctx context.Context, filter domain.AdminAppointmentsFilter) (int, error)
	UpdateStatusIf(ctx context.Context, id string, from, to domain.AppointmentStatus) error
}

// UnavailabilityRepository интерфейс репозитория недоступности мастеров
type UnavailabilityRepository interface {
	Release(ctx context.Context, staffID string, date time.Time, t types.TimeString) error
}

// NotifyServiceClient интерфейс клиента NotifyService
type NotifyServiceClient interface {
	Notify(ctx context.Context, n notifyservice.Notification) error
}

// Metrics интерфейс бизнес-метрик переходов статусов
type Metrics interface {
	IncStatusTransition(from, to string)
	IncNotifyFailure()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
