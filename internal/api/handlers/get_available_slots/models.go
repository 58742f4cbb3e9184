package get_available_slots

import (
	"github.com/inkfade/IFS-BookingService/internal/domain"
	getAvailableSlots "github.com/inkfade/IFS-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`   // "14:00"
	DisplayTime     string `json:"displayTime"` // "2:00 PM"
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	StaffID string          `json:"staffId"`
	Date    string          `json:"date"`
	Slots   []*SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]*SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = &SlotResponse{
			StartTime:       slot.StartTime.String(),
			DisplayTime:     slot.Display,
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		StaffID: resp.StaffID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
