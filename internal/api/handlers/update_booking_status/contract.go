package update_booking_status

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Transition(ctx context.Context, id string, req *models.TransitionRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
