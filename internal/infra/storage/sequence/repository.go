package sequence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/inkfade/IFS-BookingService/pkg/dbmetrics"
	"github.com/inkfade/IFS-BookingService/pkg/psqlbuilder"
)

// SequenceAppointment имя счетчика публичных номеров записей
const SequenceAppointment = "appointment"

type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий монотонных счетчиков.
// Инкремент выполняется одним UPDATE ... RETURNING: строка счетчика
// блокируется до конца транзакции, поэтому два конкурентных вызова
// никогда не получат одно значение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетчиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Next атомарно инкрементирует счетчик и возвращает новое значение
func (r *Repository) Next(ctx context.Context, name string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sequence_counters").
		Set("value", squirrel.Expr("value + 1")).
		Where(squirrel.Eq{"name": name}).
		Suffix("RETURNING value").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Next - build update query: %v", ErrBuildQuery, err)
	}

	var value int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: Next - %s", ErrUnknownSequence, name)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Next - execute update: %v", ErrExecQuery, err)
	}

	return value, nil
}
