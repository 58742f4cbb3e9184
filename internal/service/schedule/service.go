package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	identityClient "github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
	"github.com/inkfade/IFS-BookingService/internal/service/schedule/models"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// Service сервис для управления расписанием недоступности мастеров
type Service struct {
	unavailabilityRepo UnavailabilityRepository
	identityClient     IdentityServiceClient
	timeProvider       TimeProvider
	logger             Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	unavailabilityRepo UnavailabilityRepository,
	identityClient IdentityServiceClient,
	logger Logger,
) *Service {
	return &Service{
		unavailabilityRepo: unavailabilityRepo,
		identityClient:     identityClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// SetBlackouts заменяет ручные блокировки мастера на дату новым набором.
// Времена принимаются и в 24-часовом, и в 12-часовом виде и приводятся
// к каноническому "HH:MM" до записи.
func (s *Service) SetBlackouts(ctx context.Context, req *models.SetBlackoutsRequest) error {
	s.logger.Info("SetBlackouts: staff=%s, date=%s, times=%d", req.StaffID, req.Date, len(req.Times))

	if strings.TrimSpace(req.StaffID) == "" {
		return fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("SetBlackouts: invalid date %q: %v", req.Date, err)
		return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	times := make([]types.TimeString, 0, len(req.Times))
	for _, raw := range req.Times {
		t, err := types.NewTimeStringFromString(raw)
		if err != nil {
			s.logger.Warn("SetBlackouts: invalid time %q: %v", raw, err)
			return fmt.Errorf("%w: %q", ErrInvalidTime, raw)
		}
		times = append(times, t)
	}

	if _, err := s.identityClient.GetStaff(ctx, req.StaffID); err != nil {
		if errors.Is(err, identityClient.ErrStaffNotFound) {
			s.logger.Warn("SetBlackouts: staff id=%s not found", req.StaffID)
			return ErrStaffNotFound
		}
		s.logger.Error("SetBlackouts: failed to get staff id=%s: %v", req.StaffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if err := s.unavailabilityRepo.ReplaceBlackouts(ctx, req.StaffID, date, times); err != nil {
		s.logger.Error("SetBlackouts: repository error for staff=%s: %v", req.StaffID, err)
		return fmt.Errorf("%w: SetBlackouts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetBlackouts: successfully set %d blackouts for staff=%s on %s",
		len(times), req.StaffID, req.Date)
	return nil
}

// GetSchedule получает недоступность мастера, начиная с сегодняшнего дня
func (s *Service) GetSchedule(ctx context.Context, staffID string) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for staff=%s", staffID)

	if strings.TrimSpace(staffID) == "" {
		return nil, fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	records, err := s.unavailabilityRepo.ListByStaff(ctx, staffID, today)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched %d entries for staff=%s", len(records), staffID)
	return models.FromDomainRecords(staffID, records), nil
}
