package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	appointmentRepo "github.com/inkfade/IFS-BookingService/internal/infra/storage/appointment"
	"github.com/inkfade/IFS-BookingService/internal/infra/storage/sequence"
	identityClient "github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
)

// displayCodeFormat формат публичного номера записи
const displayCodeFormat = "APT-%06d"

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo    AppointmentRepository
	unavailabilityRepo UnavailabilityRepository
	sequenceRepo       SequenceRepository
	identityClient     IdentityServiceClient
	txManager          TransactionManager
	metrics            Metrics
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	unavailabilityRepo UnavailabilityRepository,
	sequenceRepo SequenceRepository,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		unavailabilityRepo: unavailabilityRepo,
		sequenceRepo:       sequenceRepo,
		identityClient:     identityClient,
		txManager:          txManager,
		metrics:            metrics,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет use case создания записи.
// Захват слота и проверка лимита повторных записей идут в одной
// сериализуемой транзакции; сам захват полагается на уникальный индекс,
// а не на предварительное чтение, поэтому из конкурентных запросов на один
// слот ровно один завершается успехом. Захват идет первым: запрос,
// нарушающий оба правила, получает конфликт слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, staff=%s, service=%s, date=%s, time=%s",
		req.ClientID, req.StaffID, req.Service, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и слота
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	if err := validateSlotOnGrid(req.Date, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем профиль клиента
	client, err := uc.identityClient.GetClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, identityClient.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%s not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 5. Получаем профиль мастера
	staff, err := uc.identityClient.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, identityClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 6. Проверяем соответствие специализации мастера услуге
	specialization, err := domain.ParseSpecialization(staff.Specialization)
	if err != nil {
		uc.logger.Error("CreateBooking: staff id=%s has unknown specialization %q", req.StaffID, staff.Specialization)
		return nil, fmt.Errorf("%w: unknown staff specialization: %v", ErrInternal, err)
	}

	if !domain.CanFulfil(specialization, req.Service) {
		uc.logger.Warn("CreateBooking: staff id=%s (%s) cannot fulfil service %s",
			req.StaffID, specialization, req.Service)
		return nil, ErrStaffCannotFulfil
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем следующий публичный номер записи. Пробел в
		// нумерации при откате транзакции допустим
		seq, err := uc.sequenceRepo.Next(txCtx, sequence.SequenceAppointment)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get next sequence value: %v", err)
			return fmt.Errorf("%w: failed to get next sequence value: %v", ErrInternal, err)
		}

		// 7.2. Захватываем слот вставкой; занятый слот проявится
		// нарушением уникального индекса. Конфликт слота проверяется
		// раньше лимита повторных записей
		appt := &domain.Appointment{
			ID:              uuid.NewString(),
			DisplayCode:     fmt.Sprintf(displayCodeFormat, seq),
			ClientID:        req.ClientID,
			StaffID:         req.StaffID,
			Service:         req.Service,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			Remarks:         req.Remarks,
			Status:          domain.StatusPending,
			ClientName:      client.Name,
			StaffName:       staff.Name,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s already taken for staff id=%s",
					req.Date.Format(domain.DateFormat), req.StartTime, req.StaffID)
				uc.metrics.IncSlotConflict()
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 7.3. Проверяем лимит повторных записей: не больше одной
		// неотмененной записи на услугу в скользящем окне, отсчитанном
		// от дня бронирования. Окно начинается с полуночи, чтобы запись
		// ровно 14-дневной давности тоже попадала в подсчет; только что
		// вставленная строка исключается по ID. Отказ откатывает
		// транзакцию вместе с захватом слота
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		windowStart := today.AddDate(0, 0, -domain.FrequencyWindowDays)

		recentCount, err := uc.appointmentRepo.CountRecentByClientAndService(
			txCtx, req.ClientID, req.Service, windowStart, created.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count recent appointments: %v", err)
			return fmt.Errorf("%w: failed to count recent appointments: %v", ErrInternal, err)
		}

		if recentCount >= domain.MaxBookingsPerWindow {
			uc.logger.Warn("CreateBooking: client id=%s already has %d %s appointment(s) within %d days",
				req.ClientID, recentCount, req.Service, domain.FrequencyWindowDays)
			uc.metrics.IncFrequencyReject()
			return ErrFrequencyLimitExceeded
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncAppointmentCreated(string(result.Service))
	uc.logger.Info("CreateBooking: successfully created appointment id=%s, code=%s", result.ID, result.DisplayCode)

	// 8. Зеркалим занятость слота в расписании мастера. Зеркало
	// вспомогательное: при ошибке запись остается действительной, а
	// расхождение только логируется
	if err := uc.unavailabilityRepo.MarkBooked(ctx, result.StaffID, result.AppointmentDate, result.StartTime); err != nil {
		uc.logger.Error("CreateBooking: failed to mirror slot into staff schedule for appointment id=%s: %v",
			result.ID, err)
	}

	return &Response{
		ID:          result.ID,
		DisplayCode: result.DisplayCode,
		ClientID:    result.ClientID,
		StaffID:     result.StaffID,
		Service:     result.Service,
		Date:        result.AppointmentDate,
		StartTime:   result.StartTime,
		Display:     result.StartTime.Display(),
		Status:      result.Status,
		ClientName:  result.ClientName,
		StaffName:   result.StaffName,
		Remarks:     result.Remarks,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}
