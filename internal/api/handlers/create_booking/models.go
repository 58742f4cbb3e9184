package create_booking

import (
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	createBooking "github.com/inkfade/IFS-BookingService/internal/usecase/create_booking"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID  string  `json:"clientId"`
	StaffID   string  `json:"staffId"`
	Service   string  `json:"service"`   // "haircut" или "tattoo"
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "14:00" или "2:00 PM"
	Remarks   *string `json:"remarks,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          string  `json:"id"`
	DisplayCode string  `json:"displayCode"`
	ClientID    string  `json:"clientId"`
	ClientName  string  `json:"clientName"`
	StaffID     string  `json:"staffId"`
	StaffName   string  `json:"staffName"`
	Service     string  `json:"service"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	DisplayTime string  `json:"displayTime"`
	Status      string  `json:"status"`
	Remarks     *string `json:"remarks,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	service, err := domain.ParseServiceCategory(r.Service)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:  r.ClientID,
		StaffID:   r.StaffID,
		Service:   service,
		Date:      date,
		StartTime: startTime,
		Remarks:   r.Remarks,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		DisplayCode: resp.DisplayCode,
		ClientID:    resp.ClientID,
		ClientName:  resp.ClientName,
		StaffID:     resp.StaffID,
		StaffName:   resp.StaffName,
		Service:     string(resp.Service),
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		DisplayTime: resp.Display,
		Status:      string(resp.Status),
		Remarks:     resp.Remarks,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
