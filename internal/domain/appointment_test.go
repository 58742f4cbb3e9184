package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    AppointmentStatus
		wantErr bool
	}{
		{input: "Pending", want: StatusPending},
		{input: "approved", want: StatusApproved},
		{input: "DENIED", want: StatusDenied},
		{input: "cancelled", want: StatusCancelled},
		{input: "Completed", want: StatusCompleted},
		{input: "abandoned", want: StatusAbandoned},
		{input: "Done", want: StatusCompleted},
		{input: "done", want: StatusCompleted},
		{input: "DONE", want: StatusCompleted},
		{input: " pending ", want: StatusPending},
		{input: "unknown", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to AppointmentStatus }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusDenied},
		{StatusPending, StatusCancelled},
		{StatusPending, StatusCompleted},
		{StatusPending, StatusAbandoned},
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusCompleted},
		{StatusApproved, StatusAbandoned},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	denied := []struct{ from, to AppointmentStatus }{
		{StatusApproved, StatusDenied},
		{StatusApproved, StatusPending},
		{StatusDenied, StatusApproved},
		{StatusCancelled, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusAbandoned, StatusApproved},
		{StatusPending, StatusPending},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s should be denied", tr.from, tr.to)
	}
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.False(t, StatusDenied.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusAbandoned.IsTerminal())
}

func TestAppointmentStatus_BlocksSlot(t *testing.T) {
	// Только отмена возвращает слот, все остальные статусы его держат
	assert.False(t, StatusCancelled.BlocksSlot())

	for _, status := range []AppointmentStatus{StatusPending, StatusApproved, StatusDenied, StatusCompleted, StatusAbandoned} {
		assert.True(t, status.BlocksSlot(), "%s should block the slot", status)
	}
}

func TestAppointment_HasElapsed(t *testing.T) {
	appt := &Appointment{
		AppointmentDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
	}

	// За час до начала
	assert.False(t, appt.HasElapsed(time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)))

	// Во время слота
	assert.False(t, appt.HasElapsed(time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)))

	// Ровно в конец слота
	assert.True(t, appt.HasElapsed(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)))

	// На следующий день
	assert.True(t, appt.HasElapsed(time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)))
}

func TestAppointment_IsOwnedBy(t *testing.T) {
	appt := &Appointment{ClientID: "client-1"}
	assert.True(t, appt.IsOwnedBy("client-1"))
	assert.False(t, appt.IsOwnedBy("client-2"))
}
