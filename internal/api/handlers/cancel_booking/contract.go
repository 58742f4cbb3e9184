package cancel_booking

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
