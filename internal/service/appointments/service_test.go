package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	appointmentRepo "github.com/inkfade/IFS-BookingService/internal/infra/storage/appointment"
	"github.com/inkfade/IFS-BookingService/internal/integrations/notifyservice"
	"github.com/inkfade/IFS-BookingService/internal/service/appointments/models"
	"github.com/inkfade/IFS-BookingService/pkg/ptr"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appt      *domain.Appointment
	getErr    error
	list      []*domain.Appointment
	listErr   error
	total     int
	updateErr error

	updatedID   string
	updatedFrom domain.AppointmentStatus
	updatedTo   domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ string) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := *f.appt
	return &out, nil
}

func (f *fakeAppointmentRepo) ListByClient(_ context.Context, _ string) ([]*domain.Appointment, error) {
	return f.list, f.listErr
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, _ domain.AdminAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.list, f.listErr
}

func (f *fakeAppointmentRepo) CountWithFilter(_ context.Context, _ domain.AdminAppointmentsFilter) (int, error) {
	return f.total, f.listErr
}

func (f *fakeAppointmentRepo) UpdateStatusIf(_ context.Context, id string, from, to domain.AppointmentStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedFrom = from
	f.updatedTo = to
	return nil
}

type fakeUnavailabilityRepo struct {
	releaseErr error

	released       bool
	releasedStaff  string
	releasedAtTime types.TimeString
}

func (f *fakeUnavailabilityRepo) Release(_ context.Context, staffID string, _ time.Time, t types.TimeString) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = true
	f.releasedStaff = staffID
	f.releasedAtTime = t
	return nil
}

type fakeNotifyClient struct {
	err  error
	sent []notifyservice.Notification
}

func (f *fakeNotifyClient) Notify(_ context.Context, n notifyservice.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fakeMetrics struct {
	transitions    int
	notifyFailures int
}

func (f *fakeMetrics) IncStatusTransition(string, string) { f.transitions++ }
func (f *fakeMetrics) IncNotifyFailure()                  { f.notifyFailures++ }

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	svc            *Service
	appointments   *fakeAppointmentRepo
	unavailability *fakeUnavailabilityRepo
	notify         *fakeNotifyClient
	metrics        *fakeMetrics
}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              "appt-1",
		DisplayCode:     "APT-000007",
		ClientID:        "client-1",
		StaffID:         "staff-1",
		Service:         domain.ServiceHaircut,
		AppointmentDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		Status:          domain.StatusPending,
		ClientName:      "Anna",
		StaffName:       "Ivan",
	}
}

func newTestEnv(appt *domain.Appointment) *testEnv {
	env := &testEnv{
		appointments:   &fakeAppointmentRepo{appt: appt},
		unavailability: &fakeUnavailabilityRepo{},
		notify:         &fakeNotifyClient{},
		metrics:        &fakeMetrics{},
	}

	env.svc = NewService(env.appointments, env.unavailability, env.notify, env.metrics, noopLogger{})
	// За день до записи
	env.svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)}
	return env
}

func TestGetByID_OwnerAndAdmin(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	resp, err := env.svc.GetByID(context.Background(), "appt-1", "client-1", false)
	require.NoError(t, err)
	assert.Equal(t, "APT-000007", resp.DisplayCode)
	assert.Equal(t, "2:00 PM", resp.DisplayTime)

	_, err = env.svc.GetByID(context.Background(), "appt-1", "other-client", false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.svc.GetByID(context.Background(), "appt-1", "admin-1", true)
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv(pendingAppointment())
	env.appointments.getErr = appointmentRepo.ErrAppointmentNotFound

	_, err := env.svc.GetByID(context.Background(), "missing", "client-1", false)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestTransition_ApproveNotifiesClient(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	resp, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Approved"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Equal(t, domain.StatusPending, env.appointments.updatedFrom)
	assert.Equal(t, domain.StatusApproved, env.appointments.updatedTo)
	assert.Equal(t, 1, env.metrics.transitions)

	require.Len(t, env.notify.sent, 1)
	assert.Equal(t, "client-1", env.notify.sent[0].RecipientID)
	assert.Contains(t, env.notify.sent[0].Message, "APT-000007")

	// Подтверждение слот не освобождает
	assert.False(t, env.unavailability.released)
}

func TestTransition_DeniedReleasesSlotAndNotifies(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Denied"})
	require.NoError(t, err)

	assert.True(t, env.unavailability.released)
	assert.Equal(t, "staff-1", env.unavailability.releasedStaff)
	assert.Equal(t, types.TimeString("14:00"), env.unavailability.releasedAtTime)

	require.Len(t, env.notify.sent, 1)
	assert.Equal(t, "client-1", env.notify.sent[0].RecipientID)
}

func TestTransition_CancelAfterApprovalNotifiesStaff(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusApproved
	env := newTestEnv(appt)

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "client-1", IsAdmin: false, Status: "Cancelled"})
	require.NoError(t, err)

	assert.True(t, env.unavailability.released)
	require.Len(t, env.notify.sent, 1)
	assert.Equal(t, "staff-1", env.notify.sent[0].RecipientID)
}

func TestTransition_AdminCancelAfterApprovalIsSilent(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusApproved
	env := newTestEnv(appt)

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Cancelled"})
	require.NoError(t, err)

	// Слот освобождается, но мастер не получает уведомления об отмене,
	// которую выполнил не клиент
	assert.True(t, env.unavailability.released)
	assert.Empty(t, env.notify.sent)
}

func TestTransition_CancelFromPendingIsSilent(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "client-1", IsAdmin: false, Status: "Cancelled"})
	require.NoError(t, err)

	assert.True(t, env.unavailability.released)
	assert.Empty(t, env.notify.sent)
}

func TestTransition_DoneNormalizesToCompleted(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusApproved
	env := newTestEnv(appt)
	// После окончания слота
	env.svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)}

	resp, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Done"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, domain.StatusCompleted, env.appointments.updatedTo)
}

func TestTransition_CompleteBeforeElapsed(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusApproved
	env := newTestEnv(appt)

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Completed"})
	assert.ErrorIs(t, err, ErrNotElapsed)
	assert.Empty(t, env.appointments.updatedID)
}

func TestTransition_InvalidTransition(t *testing.T) {
	appt := pendingAppointment()
	appt.Status = domain.StatusCancelled
	env := newTestEnv(appt)

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Approved"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_InvalidStatus(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Frozen"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransition_ClientCannotApprove(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "client-1", IsAdmin: false, Status: "Approved"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTransition_ClientCannotTouchForeignAppointment(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "client-2", IsAdmin: false, Status: "Cancelled"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestTransition_ConcurrentUpdate(t *testing.T) {
	env := newTestEnv(pendingAppointment())
	env.appointments.updateErr = appointmentRepo.ErrStatusConflict

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Approved"})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestTransition_NotifyFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(pendingAppointment())
	env.notify.err = errors.New("notify service down")

	_, err := env.svc.Transition(context.Background(), "appt-1",
		&models.TransitionRequest{UserID: "admin-1", IsAdmin: true, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, 1, env.metrics.notifyFailures)
}

func TestCancel_DelegatesToTransition(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	resp, err := env.svc.Cancel(context.Background(), "appt-1",
		&models.CancelRequest{UserID: "client-1", IsAdmin: false})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.True(t, env.unavailability.released)
}

func TestGetAdminAppointments_Pagination(t *testing.T) {
	appt := pendingAppointment()
	env := newTestEnv(appt)
	env.appointments.list = []*domain.Appointment{appt}
	env.appointments.total = 57

	resp, err := env.svc.GetAdminAppointments(context.Background(),
		&models.GetAdminAppointmentsRequest{Page: 2, PerPage: 20})
	require.NoError(t, err)

	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, 57, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 20, resp.PerPage)
}

func TestGetAdminAppointments_InvalidStatusFilter(t *testing.T) {
	env := newTestEnv(pendingAppointment())

	_, err := env.svc.GetAdminAppointments(context.Background(),
		&models.GetAdminAppointmentsRequest{Status: ptr.Ptr("Frozen")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetClientAppointments(t *testing.T) {
	appt := pendingAppointment()
	env := newTestEnv(appt)
	env.appointments.list = []*domain.Appointment{appt, appt}

	resp, err := env.svc.GetClientAppointments(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
	assert.Equal(t, 2, resp.Total)
}
