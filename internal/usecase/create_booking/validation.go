package create_booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.StaffID) == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}

	if _, ok := domain.SpecializationFor(req.Service); !ok {
		return fmt.Errorf("%w: unknown service %q", ErrInvalidInput, req.Service)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return fmt.Errorf("%w: remarks exceed %d characters", ErrInvalidInput, domain.MaxRemarksLength)
	}

	return nil
}

// validateSlotOnGrid проверяет, что время попадает в сетку часовых слотов
// студии на указанный день: минуты нулевые, час в рабочем диапазоне.
func validateSlotOnGrid(date time.Time, startTime types.TimeString) error {
	weekday := date.Weekday()
	if weekday == domain.ClosureDay {
		return ErrStudioClosed
	}

	parts := strings.SplitN(startTime.String(), ":", 2)
	if len(parts) != 2 || parts[1] != "00" {
		return fmt.Errorf("%w: %s does not start on the hour", ErrInvalidTimeSlot, startTime)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, startTime)
	}

	if hour < domain.OpeningHour || hour >= domain.ClosingHourFor(weekday) {
		return fmt.Errorf("%w: %s is outside working hours", ErrInvalidTimeSlot, startTime)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
