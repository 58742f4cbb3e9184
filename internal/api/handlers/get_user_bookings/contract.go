package get_user_bookings

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetClientAppointments(ctx context.Context, clientID string) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
