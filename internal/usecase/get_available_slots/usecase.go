package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
)

// UseCase use case получения доступных слотов мастера на дату
type UseCase struct {
	appointmentRepo    AppointmentRepository
	unavailabilityRepo UnavailabilityRepository
	identityClient     IdentityServiceClient
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	unavailabilityRepo UnavailabilityRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		unavailabilityRepo: unavailabilityRepo,
		identityClient:     identityClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Доступность считается от сетки часовых слотов студии минус объединение
// двух источников занятости: записей недоступности мастера и неотмененных
// записей клиентов. Любого источника достаточно, чтобы слот пропал.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%s, date=%s",
		req.StaffID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	if _, err := uc.identityClient.GetStaff(ctx, req.StaffID); err != nil {
		if errors.Is(err, identityservice.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	grid := generateDaySlots(req.Date)
	if len(grid) == 0 {
		uc.logger.Info("GetAvailableSlots: studio is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, StaffID: req.StaffID, Slots: []Slot{}}, nil
	}

	unavailableTimes, err := uc.unavailabilityRepo.ListTimes(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get unavailability: %v", err)
		return nil, fmt.Errorf("%w: failed to get unavailability: %v", ErrInternal, err)
	}

	bookedTimes, err := uc.appointmentRepo.ListBookedTimes(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	available := excludeTimes(grid, unavailableTimes, bookedTimes)

	slots := make([]Slot, len(available))
	for i, t := range available {
		slots[i] = Slot{
			StartTime:       t,
			Display:         t.Display(),
			DurationMinutes: domain.SlotDurationMinutes,
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for staff=%s, date=%s",
		len(slots), len(grid), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:    req.Date,
		StaffID: req.StaffID,
		Slots:   slots,
	}, nil
}
