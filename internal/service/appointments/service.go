package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	appointmentRepo "github.com/inkfade/IFS-BookingService/internal/infra/storage/appointment"
	"github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с жизненным циклом записей
type Service struct {
	appointmentRepo    AppointmentRepository
	unavailabilityRepo UnavailabilityRepository
	notifyClient       NotifyServiceClient
	metrics            Metrics
	timeProvider       TimeProvider
	logger             Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	unavailabilityRepo UnavailabilityRepository,
	notifyClient NotifyServiceClient,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo:    appointmentRepo,
		unavailabilityRepo: unavailabilityRepo,
		notifyClient:       notifyClient,
		metrics:            metrics,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свои записи, администратор любые.
func (s *Service) GetByID(ctx context.Context, id string, userID string, isAdmin bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !isAdmin && !appt.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetClientAppointments получает записи клиента от новых к старым
func (s *Service) GetClientAppointments(ctx context.Context, clientID string) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%s", clientID)

	appointments, err := s.appointmentRepo.ListByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%s",
		len(appointments), clientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetAdminAppointments получает записи по административному фильтру
// с пагинацией. Доступно только администраторам.
func (s *Service) GetAdminAppointments(ctx context.Context, req *models.GetAdminAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAdminAppointments: fetching appointments, historyOnly=%v, excludeHistory=%v, page=%d",
		req.HistoryOnly, req.ExcludeHistory, req.Page)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAdminAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminAppointments - repository error: %v", ErrInternal, err)
	}

	total, err := s.appointmentRepo.CountWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdminAppointments: count error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminAppointments - count error: %v", ErrInternal, err)
	}

	resp := models.FromDomainAppointmentList(appointments)
	resp.Total = total
	resp.Page = filter.Page
	resp.PerPage = filter.PerPage

	s.logger.Info("GetAdminAppointments: successfully fetched %d of %d appointments", len(appointments), total)
	return resp, nil
}

// Transition переводит запись в новый статус.
// Статус нормализуется на входе (легаси-синоним "Done" становится
// Completed), переход валидируется конечным автоматом, а сама смена
// статуса идет через compare-and-set по текущему статусу, чтобы
// конкурентные переходы не затирали друг друга.
func (s *Service) Transition(ctx context.Context, id string, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Transition: appointment id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	target, err := domain.NormalizeStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	appt, err := s.getAppointment(ctx, id, "Transition")
	if err != nil {
		return nil, err
	}

	// Клиент может только отменять свои записи, остальные переходы
	// административные
	if !req.IsAdmin {
		if !appt.IsOwnedBy(req.UserID) {
			s.logger.Warn("Transition: access denied for user=%s to appointment id=%s", req.UserID, id)
			return nil, ErrAccessDenied
		}
		if target != domain.StatusCancelled {
			s.logger.Warn("Transition: user=%s attempted non-cancel transition to %s", req.UserID, target)
			return nil, ErrAccessDenied
		}
	}

	if !domain.CanTransition(appt.Status, target) {
		s.logger.Warn("Transition: %s -> %s not allowed for appointment id=%s", appt.Status, target, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	// Завершить можно только запись, чье время уже прошло
	if target == domain.StatusCompleted && !appt.HasElapsed(s.timeProvider.Now()) {
		s.logger.Warn("Transition: appointment id=%s has not elapsed yet, cannot complete", id)
		return nil, ErrNotElapsed
	}

	if err := s.appointmentRepo.UpdateStatusIf(ctx, id, appt.Status, target); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("Transition: concurrent update detected for appointment id=%s", id)
			return nil, ErrConcurrentUpdate
		}
		s.logger.Error("Transition: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncStatusTransition(string(appt.Status), string(target))
	s.logger.Info("Transition: appointment id=%s moved %s -> %s", id, appt.Status, target)

	previous := appt.Status
	appt.Status = target

	s.applySideEffects(ctx, appt, previous, req.IsAdmin)

	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет запись от имени клиента или администратора
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	return s.Transition(ctx, id, &models.TransitionRequest{
		UserID:  req.UserID,
		IsAdmin: req.IsAdmin,
		Status:  string(domain.StatusCancelled),
	})
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// applySideEffects выполняет побочные действия перехода: освобождение
// слота в расписании мастера и уведомления. Все действия best-effort,
// их ошибки логируются и не откатывают сам переход.
func (s *Service) applySideEffects(ctx context.Context, appt *domain.Appointment, previous domain.AppointmentStatus, byAdmin bool) {
	// Отказ и отмена возвращают слот в доступность
	if appt.Status == domain.StatusDenied || appt.Status == domain.StatusCancelled {
		if err := s.unavailabilityRepo.Release(ctx, appt.StaffID, appt.AppointmentDate, appt.StartTime); err != nil {
			s.logger.Error("applySideEffects: failed to release slot for appointment id=%s: %v", appt.ID, err)
		}
	}

	switch {
	case appt.Status == domain.StatusApproved:
		s.notify(ctx, appt.ClientID, "Appointment approved",
			fmt.Sprintf("Your appointment %s on %s at %s has been approved.",
				appt.DisplayCode, appt.AppointmentDate.Format(domain.DateFormat), appt.StartTime.Display()))

	case appt.Status == domain.StatusDenied:
		s.notify(ctx, appt.ClientID, "Appointment denied",
			fmt.Sprintf("Your appointment %s on %s at %s has been denied.",
				appt.DisplayCode, appt.AppointmentDate.Format(domain.DateFormat), appt.StartTime.Display()))

	case appt.Status == domain.StatusCancelled && previous == domain.StatusApproved && !byAdmin:
		// Мастер узнает, когда клиент отменяет уже подтвержденную запись;
		// административная отмена уведомления не шлет
		s.notify(ctx, appt.StaffID, "Appointment cancelled",
			fmt.Sprintf("Appointment %s on %s at %s has been cancelled by the client.",
				appt.DisplayCode, appt.AppointmentDate.Format(domain.DateFormat), appt.StartTime.Display()))
	}
}

func (s *Service) notify(ctx context.Context, recipientID, subject, message string) {
	err := s.notifyClient.Notify(ctx, notifyservice.Notification{
		RecipientID: recipientID,
		Subject:     subject,
		Message:     message,
	})
	if err != nil {
		s.metrics.IncNotifyFailure()
		s.logger.Error("notify: failed to send %q to user=%s: %v", subject, recipientID, err)
	}
}
