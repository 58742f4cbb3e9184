package unavailability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/pkg/dbmetrics"
	"github.com/inkfade/IFS-BookingService/pkg/psqlbuilder"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с недоступностью мастеров.
// Таблица staff_unavailability хранит как ручные блокировки расписания
// (is_booked = false), так и зеркальные отметки подтвержденных записей
// (is_booked = true). Зеркало вторично: авторитетный источник занятых
// слотов это таблица записей.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория недоступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListTimes получает времена недоступности мастера на дату
func (r *Repository) ListTimes(ctx context.Context, staffID string, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time").
		From("staff_unavailability").
		Where(squirrel.Eq{"staff_id": staffID, "date": date}).
		OrderBy("time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ListByStaff получает все записи недоступности мастера, начиная с даты from
func (r *Repository) ListByStaff(ctx context.Context, staffID string, from time.Time) ([]*domain.UnavailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "date", "time", "is_booked", "created_at").
		From("staff_unavailability").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date ASC, time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.UnavailabilityRecord, 0)
	for rows.Next() {
		var rec domain.UnavailabilityRecord
		if err := rows.Scan(&rec.ID, &rec.StaffID, &rec.Date, &rec.Time, &rec.IsBooked, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByStaff - scan row: %v", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// ReplaceBlackouts заменяет ручные блокировки мастера на дату новым набором
// времен. Зеркальные отметки записей (is_booked = true) не трогаются.
func (r *Repository) ReplaceBlackouts(ctx context.Context, staffID string, date time.Time, times []types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("staff_unavailability").
		Where(squirrel.Eq{"staff_id": staffID, "date": date, "is_booked": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceBlackouts - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlackouts - execute delete: %v", ErrExecQuery, err)
	}

	if len(times) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("staff_unavailability").
		Columns("staff_id", "date", "time", "is_booked")

	for _, t := range times {
		insertBuilder = insertBuilder.Values(staffID, date, t, false)
	}

	insertQuery, insertArgs, err := insertBuilder.
		Suffix("ON CONFLICT (staff_id, date, time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceBlackouts - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceBlackouts - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// MarkBooked отмечает слот мастера как занятый записью (зеркальная отметка)
func (r *Repository) MarkBooked(ctx context.Context, staffID string, date time.Time, t types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_unavailability").
		Columns("staff_id", "date", "time", "is_booked").
		Values(staffID, date, t, true).
		Suffix("ON CONFLICT (staff_id, date, time) DO UPDATE SET is_booked = TRUE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkBooked - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Release снимает зеркальную отметку занятости при отмене или отказе.
// Удаляются только строки с is_booked = true: ручные блокировки расписания
// отмена записи не затрагивает.
func (r *Repository) Release(ctx context.Context, staffID string, date time.Time, t types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff_unavailability").
		Where(squirrel.Eq{"staff_id": staffID, "date": date, "time": t, "is_booked": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
