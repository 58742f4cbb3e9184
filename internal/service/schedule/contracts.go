package schedule

import (
	"context"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// UnavailabilityRepository интерфейс репозитория недоступности мастеров
type UnavailabilityRepository interface {
	ReplaceBlackouts(ctx context.Context, staffID string, date time.Time, times []types.TimeString) error
	ListByStaff(ctx context.Context, staffID string, from time.Time) ([]*domain.UnavailabilityRecord, error)
}

// IdentityServiceClient интерфейс клиента IdentityService
type IdentityServiceClient interface {
	GetStaff(ctx context.Context, staffID string) (*identityservice.StaffProfile, error)
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
