package sequence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() { db.Close() }
}

func TestNext_Success(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE sequence_counters").
		WithArgs(SequenceAppointment).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(42)))

	value, err := repo.Next(context.Background(), SequenceAppointment)
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNext_UnknownSequence(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("UPDATE sequence_counters").
		WithArgs("payments").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Next(context.Background(), "payments")
	assert.ErrorIs(t, err, ErrUnknownSequence)
}
