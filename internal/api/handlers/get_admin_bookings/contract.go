package get_admin_bookings

import (
	"context"

	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetAdminAppointments(ctx context.Context, req *models.GetAdminAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
