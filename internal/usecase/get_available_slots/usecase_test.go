package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	booked []types.TimeString
	err    error
}

func (f *fakeAppointmentRepo) ListBookedTimes(_ context.Context, _ string, _ time.Time) ([]types.TimeString, error) {
	return f.booked, f.err
}

type fakeUnavailabilityRepo struct {
	times []types.TimeString
	err   error
}

func (f *fakeUnavailabilityRepo) ListTimes(_ context.Context, _ string, _ time.Time) ([]types.TimeString, error) {
	return f.times, f.err
}

type fakeIdentityClient struct {
	staff *identityservice.StaffProfile
	err   error
}

func (f *fakeIdentityClient) GetStaff(_ context.Context, _ string) (*identityservice.StaffProfile, error) {
	return f.staff, f.err
}

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

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	unavailability *fakeUnavailabilityRepo,
	identity *fakeIdentityClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(appointments, unavailability, identity, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var (
	// 2026-03-09 понедельник, 2026-03-14 суббота, 2026-03-15 воскресенье
	monday   = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	testStaff = &identityservice.StaffProfile{ID: "staff-1", Name: "Ivan", Specialization: "Barber", IsActive: true}
)

func slotTimes(resp *Response) []types.TimeString {
	out := make([]types.TimeString, len(resp.Slots))
	for i, s := range resp.Slots {
		out[i] = s.StartTime
	}
	return out
}

func TestExecute_FullGridOnWeekday(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: monday})
	require.NoError(t, err)

	// Будний день: 09:00 .. 20:00, 12 часовых слотов
	require.Len(t, resp.Slots, 12)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("20:00"), resp.Slots[11].StartTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
	assert.Equal(t, "9:00 AM", resp.Slots[0].Display)
	assert.Equal(t, "8:00 PM", resp.Slots[11].Display)
}

func TestExecute_SaturdayClosesEarly(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: saturday})
	require.NoError(t, err)

	// Суббота: 09:00 .. 16:00, 8 слотов
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[7].StartTime)
}

func TestExecute_SundayEmpty(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExcludesUnionOfSources(t *testing.T) {
	appointments := &fakeAppointmentRepo{booked: []types.TimeString{"10:00", "14:00"}}
	unavailability := &fakeUnavailabilityRepo{times: []types.TimeString{"14:00", "15:00"}}
	uc := newTestUseCase(appointments, unavailability, &fakeIdentityClient{staff: testStaff}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: monday})
	require.NoError(t, err)

	times := slotTimes(resp)
	assert.NotContains(t, times, types.TimeString("10:00"))
	assert.NotContains(t, times, types.TimeString("14:00"))
	assert.NotContains(t, times, types.TimeString("15:00"))
	assert.Contains(t, times, types.TimeString("09:00"))
	assert.Len(t, times, 9)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	// Отмененные записи не попадают в ListBookedTimes, слот снова доступен
	appointments := &fakeAppointmentRepo{booked: []types.TimeString{}}
	uc := newTestUseCase(appointments, &fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff}, testNow)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: monday})
	require.NoError(t, err)
	assert.Contains(t, slotTimes(resp), types.TimeString("10:00"))
}

func TestExecute_StaffNotFound(t *testing.T) {
	identity := &fakeIdentityClient{err: identityservice.ErrStaffNotFound}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUnavailabilityRepo{}, identity, testNow)

	_, err := uc.Execute(context.Background(), &Request{StaffID: "missing", Date: monday})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff},
		time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff}, testNow)

	_, err := uc.Execute(context.Background(), &Request{StaffID: "", Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StaffID: "staff-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	unavailability := &fakeUnavailabilityRepo{err: errors.New("db down")}
	uc := newTestUseCase(&fakeAppointmentRepo{}, unavailability, &fakeIdentityClient{staff: testStaff}, testNow)

	_, err := uc.Execute(context.Background(), &Request{StaffID: "staff-1", Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}
