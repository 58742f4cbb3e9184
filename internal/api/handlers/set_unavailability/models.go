package set_unavailability

import "github.com/inkfade/IFS-BookingService/internal/service/schedule/models"

// SetUnavailabilityRequest HTTP request model
type SetUnavailabilityRequest struct {
	Date  string   `json:"date"`  // "2025-10-15"
	Times []string `json:"times"` // ["14:00", "3:00 PM"]
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetUnavailabilityRequest) ToServiceRequest(staffID string) *models.SetBlackoutsRequest {
	return &models.SetBlackoutsRequest{
		StaffID: staffID,
		Date:    r.Date,
		Times:   r.Times,
	}
}
