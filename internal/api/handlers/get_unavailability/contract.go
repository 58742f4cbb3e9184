package get_unavailability

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, staffID string) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
