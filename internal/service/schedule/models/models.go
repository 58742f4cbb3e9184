package models

import (
	"github.com/inkfade/IFS-BookingService/internal/domain"
)

// Request модели

// SetBlackoutsRequest запрос на установку блокировок расписания мастера
type SetBlackoutsRequest struct {
	StaffID string   `json:"staffId"`
	Date    string   `json:"date"`  // "2025-10-15"
	Times   []string `json:"times"` // ["14:00", "2:00 PM"] - оба формата допустимы
}

// Response модели

// ScheduleEntryResponse одна запись недоступности мастера
type ScheduleEntryResponse struct {
	Date        string `json:"date"`        // "2025-10-15"
	Time        string `json:"time"`        // "14:00"
	DisplayTime string `json:"displayTime"` // "2:00 PM"
	IsBooked    bool   `json:"isBooked"`    // true для зеркальных отметок записей
}

// ScheduleResponse ответ с расписанием недоступности мастера
type ScheduleResponse struct {
	StaffID string                   `json:"staffId"`
	Entries []*ScheduleEntryResponse `json:"entries"`
}

// FromDomainRecords конвертирует domain записи в response
func FromDomainRecords(staffID string, records []*domain.UnavailabilityRecord) *ScheduleResponse {
	entries := make([]*ScheduleEntryResponse, len(records))
	for i, rec := range records {
		entries[i] = &ScheduleEntryResponse{
			Date:        rec.Date.Format(domain.DateFormat),
			Time:        rec.Time.String(),
			DisplayTime: rec.Time.Display(),
			IsBooked:    rec.IsBooked,
		}
	}
	return &ScheduleResponse{
		StaffID: staffID,
		Entries: entries,
	}
}
