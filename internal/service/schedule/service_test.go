package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfade/IFS-BookingService/internal/domain"
	"github.com/inkfade/IFS-BookingService/internal/integrations/identityservice"
	"github.com/inkfade/IFS-BookingService/internal/service/schedule/models"
	"github.com/inkfade/IFS-BookingService/pkg/types"
)

type fakeUnavailabilityRepo struct {
	records    []*domain.UnavailabilityRecord
	listErr    error
	replaceErr error

	replacedStaff string
	replacedDate  time.Time
	replacedTimes []types.TimeString
}

func (f *fakeUnavailabilityRepo) ReplaceBlackouts(_ context.Context, staffID string, date time.Time, times []types.TimeString) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedStaff = staffID
	f.replacedDate = date
	f.replacedTimes = times
	return nil
}

func (f *fakeUnavailabilityRepo) ListByStaff(_ context.Context, _ string, _ time.Time) ([]*domain.UnavailabilityRecord, error) {
	return f.records, f.listErr
}

type fakeIdentityClient struct {
	staff *identityservice.StaffProfile
	err   error
}

func (f *fakeIdentityClient) GetStaff(_ context.Context, _ string) (*identityservice.StaffProfile, error) {
	return f.staff, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeUnavailabilityRepo, identity *fakeIdentityClient) *Service {
	return NewService(repo, identity, noopLogger{})
}

var testStaff = &identityservice.StaffProfile{ID: "staff-1", Name: "Ivan", Specialization: "Barber", IsActive: true}

func TestSetBlackouts_NormalizesTimes(t *testing.T) {
	repo := &fakeUnavailabilityRepo{}
	svc := newTestService(repo, &fakeIdentityClient{staff: testStaff})

	err := svc.SetBlackouts(context.Background(), &models.SetBlackoutsRequest{
		StaffID: "staff-1",
		Date:    "2026-03-09",
		Times:   []string{"14:00", "2:00 PM", "9:00 AM"},
	})
	require.NoError(t, err)

	assert.Equal(t, "staff-1", repo.replacedStaff)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), repo.replacedDate)
	// 12-часовые времена приводятся к каноническому виду
	assert.Equal(t, []types.TimeString{"14:00", "14:00", "09:00"}, repo.replacedTimes)
}

func TestSetBlackouts_InvalidTime(t *testing.T) {
	svc := newTestService(&fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff})

	err := svc.SetBlackouts(context.Background(), &models.SetBlackoutsRequest{
		StaffID: "staff-1",
		Date:    "2026-03-09",
		Times:   []string{"half past nine"},
	})
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestSetBlackouts_InvalidDate(t *testing.T) {
	svc := newTestService(&fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff})

	err := svc.SetBlackouts(context.Background(), &models.SetBlackoutsRequest{
		StaffID: "staff-1",
		Date:    "03/09/2026",
		Times:   []string{"14:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetBlackouts_StaffNotFound(t *testing.T) {
	svc := newTestService(&fakeUnavailabilityRepo{}, &fakeIdentityClient{err: identityservice.ErrStaffNotFound})

	err := svc.SetBlackouts(context.Background(), &models.SetBlackoutsRequest{
		StaffID: "missing",
		Date:    "2026-03-09",
		Times:   []string{"14:00"},
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestGetSchedule(t *testing.T) {
	repo := &fakeUnavailabilityRepo{
		records: []*domain.UnavailabilityRecord{
			{StaffID: "staff-1", Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Time: "14:00", IsBooked: false},
			{StaffID: "staff-1", Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Time: "10:00", IsBooked: true},
		},
	}
	svc := newTestService(repo, &fakeIdentityClient{staff: testStaff})

	resp, err := svc.GetSchedule(context.Background(), "staff-1")
	require.NoError(t, err)

	assert.Equal(t, "staff-1", resp.StaffID)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "2026-03-09", resp.Entries[0].Date)
	assert.Equal(t, "2:00 PM", resp.Entries[0].DisplayTime)
	assert.False(t, resp.Entries[0].IsBooked)
	assert.True(t, resp.Entries[1].IsBooked)
}

func TestGetSchedule_EmptyStaffID(t *testing.T) {
	svc := newTestService(&fakeUnavailabilityRepo{}, &fakeIdentityClient{staff: testStaff})

	_, err := svc.GetSchedule(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
