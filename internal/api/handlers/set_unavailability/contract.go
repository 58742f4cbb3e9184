package set_unavailability

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	SetBlackouts(ctx context.Context, req *models.SetBlackoutsRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
