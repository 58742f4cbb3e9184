package create_booking

import (
	"context"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	CountRecentByClientAndService(ctx context.Context, clientID string, service domain.ServiceCategory, since time.Time, excludeID string) (int, error)
}

// UnavailabilityRepository интерфейс репозитория недоступности мастеров
type UnavailabilityRepository interface {
	MarkBooked(ctx context.Context, staffID string, date time.Time, t types.TimeString) error
}

// SequenceRepository интерфейс репозитория счетчиков
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

// IdentityServiceClient интерфейс клиента IdentityService
type IdentityServiceClient interface {
	GetClient(ctx context.Context, clientID string) (*identityservice.ClientProfile, error)
	GetStaff(ctx context.Context, staffID string) (*identityservice.StaffProfile, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик бронирования
type Metrics interface {
	IncAppointmentCreated(serviceCategory string)
	IncSlotConflict()
	IncFrequencyReject()
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
