package models

import (
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
)

// Request модели

// TransitionRequest запрос на перевод записи в новый статус
type TransitionRequest struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	Status  string `json:"status"`
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// GetAdminAppointmentsRequest запрос на административную выборку записей
type GetAdminAppointmentsRequest struct {
	Status         *string `json:"status,omitempty"`         // Фильтр по статусу (опционально)
	StaffID        *string `json:"staffId,omitempty"`        // Фильтр по мастеру (опционально)
	HistoryOnly    bool    `json:"historyOnly,omitempty"`    // Только завершенные записи
	ExcludeHistory bool    `json:"excludeHistory,omitempty"` // Только активные записи
	Page           int     `json:"page,omitempty"`
	PerPage        int     `json:"perPage,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAdminAppointmentsRequest) ToDomainFilter() (domain.AdminAppointmentsFilter, error) {
	filter := domain.AdminAppointmentsFilter{
		StaffID:        r.StaffID,
		HistoryOnly:    r.HistoryOnly,
		ExcludeHistory: r.ExcludeHistory,
		Page:           r.Page,
		PerPage:        r.PerPage,
	}

	if r.Status != nil {
		status, err := domain.NormalizeStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID          string  `json:"id"`
	DisplayCode string  `json:"displayCode"` // "APT-000042"
	ClientID    string  `json:"clientId"`
	ClientName  string  `json:"clientName"`
	StaffID     string  `json:"staffId"`
	StaffName   string  `json:"staffName"`
	Service     string  `json:"service"`
	Date        string  `json:"date"`        // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "14:00"
	DisplayTime string  `json:"displayTime"` // "2:00 PM"
	Status      string  `json:"status"`
	Remarks     *string `json:"remarks,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
	Page         int                    `json:"page,omitempty"`
	PerPage      int                    `json:"perPage,omitempty"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          appt.ID,
		DisplayCode: appt.DisplayCode,
		ClientID:    appt.ClientID,
		ClientName:  appt.ClientName,
		StaffID:     appt.StaffID,
		StaffName:   appt.StaffName,
		Service:     string(appt.Service),
		Date:        appt.AppointmentDate.Format(domain.DateFormat),
		StartTime:   appt.StartTime.String(),
		DisplayTime: appt.StartTime.Display(),
		Status:      string(appt.Status),
		Remarks:     appt.Remarks,
		CreatedAt:   appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   appt.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]*AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		items[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}
