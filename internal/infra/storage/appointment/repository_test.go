package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfade/IFS-BookingService/internal/domain"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() { db.Close() }
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              "appt-1",
		DisplayCode:     "APT-000042",
		ClientID:        "client-1",
		ClientName:      "Anna",
		StaffID:         "staff-1",
		StaffName:       "Ivan",
		Service:         domain.ServiceHaircut,
		AppointmentDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		Status:          domain.StatusPending,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), testAppointment())
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SlotTaken(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_appointments_staff_slot"})

	_, err := repo.Create(context.Background(), testAppointment())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_OtherUniqueViolationIsNotSlotTaken(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	// Конфликт display_code не занятый слот
	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "appointments_display_code_key"})

	_, err := repo.Create(context.Background(), testAppointment())
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .+ FROM appointments").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(appointmentColumns).
		AddRow("appt-1", "APT-000042", "client-1", "Anna", "staff-1", "Ivan",
			"haircut", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "14:00", nil, "Pending", now, now)

	mock.ExpectQuery("SELECT .+ FROM appointments").
		WithArgs("appt-1").
		WillReturnRows(rows)

	appt, err := repo.GetByID(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, "APT-000042", appt.DisplayCode)
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.Nil(t, appt.Remarks)
}

func TestListBookedTimes(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"start_time"}).
		AddRow("10:00").
		AddRow("14:00")

	mock.ExpectQuery("SELECT start_time FROM appointments").
		WillReturnRows(rows)

	times, err := repo.ListBookedTimes(context.Background(), "staff-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.Equal(t, "10:00", times[0].String())
}

func TestCountRecentByClientAndService(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	// Строка, вставленная текущей транзакцией, исключается из подсчета
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("client-1", "haircut", time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), "Cancelled", "appt-new").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountRecentByClientAndService(context.Background(), "client-1",
		domain.ServiceHaircut, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), "appt-new")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateStatusIf_Success(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusIf(context.Background(), "appt-1", domain.StatusPending, domain.StatusApproved)
	assert.NoError(t, err)
}

func TestUpdateStatusIf_StatusConflict(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Запись существует, но статус уже сменился
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(appointmentColumns).
		AddRow("appt-1", "APT-000042", "client-1", "Anna", "staff-1", "Ivan",
			"haircut", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "14:00", nil, "Cancelled", now, now)
	mock.ExpectQuery("SELECT .+ FROM appointments").WillReturnRows(rows)

	err := repo.UpdateStatusIf(context.Background(), "appt-1", domain.StatusPending, domain.StatusApproved)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestUpdateStatusIf_NotFound(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM appointments").
		WillReturnError(sql.ErrNoRows)

	err := repo.UpdateStatusIf(context.Background(), "missing", domain.StatusPending, domain.StatusApproved)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
