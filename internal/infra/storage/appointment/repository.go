package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/pkg/dbmetrics"
	"github.com/inkfade/IFS-BookingService/pkg/psqlbuilder"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

// slotUniqueIndex имя частичного уникального индекса на
// (staff_id, appointment_date, start_time) WHERE status <> 'Cancelled'
const slotUniqueIndex = "uq_appointments_staff_slot"

var appointmentColumns = []string{
	"id",
	"display_code",
	"client_id",
	"client_name",
	"staff_id",
	"staff_name",
	"service",
	"appointment_date",
	"start_time",
	"remarks",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Захват слота атомарный: частичный уникальный индекс на
// (staff_id, appointment_date, start_time) среди неотмененных записей
// гарантирует, что из конкурентных вставок на один слот выигрывает ровно
// одна; проигравшая получает ErrSlotTaken. Никакой предварительной проверки
// "свободен ли слот" здесь нет и быть не должно.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"display_code",
			"client_id",
			"client_name",
			"staff_id",
			"staff_name",
			"service",
			"appointment_date",
			"start_time",
			"remarks",
			"status",
		).
		Values(
			appt.ID,
			appt.DisplayCode,
			appt.ClientID,
			appt.ClientName,
			appt.StaffID,
			appt.StaffName,
			appt.Service,
			appt.AppointmentDate,
			appt.StartTime,
			appt.Remarks,
			appt.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		if isSlotUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListBookedTimes получает времена неотмененных записей мастера на дату.
// Используется календарем доступности как второй (авторитетный) источник
// занятых слотов в дополнение к зеркалу недоступности.
func (r *Repository) ListBookedTimes(ctx context.Context, staffID string, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffID, "appointment_date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListBookedTimes - scan start_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// CountRecentByClientAndService подсчитывает неотмененные записи клиента
// на услугу с датой не раньше since. Используется политикой частоты
// повторных записей внутри транзакции бронирования, поэтому свежая вставка
// самой транзакции исключается по excludeID.
func (r *Repository) CountRecentByClientAndService(
	ctx context.Context,
	clientID string,
	service domain.ServiceCategory,
	since time.Time,
	excludeID string,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID, "service": service}).
		Where(squirrel.GtOrEq{"appointment_date": since}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.NotEq{"id": excludeID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountRecentByClientAndService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountRecentByClientAndService - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListByClient получает записи клиента, отсортированные от новых к старым
func (r *Repository) ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("appointment_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListWithFilter получает записи по административному фильтру с пагинацией
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AdminAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(appointmentColumns...).From("appointments"), filter).
		OrderBy("appointment_date ASC, start_time ASC")

	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		selectBuilder = selectBuilder.
			Limit(uint64(filter.PerPage)).
			Offset(uint64((page - 1) * filter.PerPage))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountWithFilter подсчитывает записи по административному фильтру
func (r *Repository) CountWithFilter(ctx context.Context, filter domain.AdminAppointmentsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("appointments"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusIf атомарно переводит запись из ожидаемого статуса в новый.
// Возвращает ErrStatusConflict, если запись существует, но её текущий статус
// уже не совпадает с ожидаемым (конкурентный переход выиграл раньше).
func (r *Repository) UpdateStatusIf(ctx context.Context, id string, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет записи" и "статус уже изменился"
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			if errors.Is(getErr, ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return getErr
		}
		return ErrStatusConflict
	}

	return nil
}

// applyFilter применяет административный фильтр к построителю запроса
func applyFilter(b squirrel.SelectBuilder, filter domain.AdminAppointmentsFilter) squirrel.SelectBuilder {
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.HistoryOnly {
		b = b.Where(squirrel.Eq{"status": terminalStatusStrings()})
	} else if filter.ExcludeHistory {
		b = b.Where(squirrel.NotEq{"status": terminalStatusStrings()})
	}

	if filter.StaffID != nil {
		b = b.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	return b
}

func terminalStatusStrings() []string {
	statuses := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAppointment сканирует одну запись
func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.DisplayCode,
		&appt.ClientID,
		&appt.ClientName,
		&appt.StaffID,
		&appt.StaffName,
		&appt.Service,
		&appt.AppointmentDate,
		&appt.StartTime,
		&appt.Remarks,
		&appt.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// isSlotUniqueViolation проверяет, что ошибка вызвана нарушением
// уникального индекса слота
func isSlotUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == slotUniqueIndex
}
