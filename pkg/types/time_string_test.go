package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical 24h", input: "14:00", want: "14:00"},
		{name: "morning 24h", input: "09:00", want: "09:00"},
		{name: "12h pm", input: "2:00 PM", want: "14:00"},
		{name: "12h am", input: "9:00 AM", want: "09:00"},
		{name: "12h lowercase", input: "2:00 pm", want: "14:00"},
		{name: "12h padded hour", input: "02:00 PM", want: "14:00"},
		{name: "12h no space", input: "2:00PM", want: "14:00"},
		{name: "noon", input: "12:00 PM", want: "12:00"},
		{name: "midnight", input: "12:00 AM", want: "00:00"},
		{name: "with spaces", input: "  14:00  ", want: "14:00"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not a time", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Display(t *testing.T) {
	assert.Equal(t, "9:00 AM", TimeString("09:00").Display())
	assert.Equal(t, "2:00 PM", TimeString("14:00").Display())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Display())
	assert.Equal(t, "12:00 AM", TimeString("00:00").Display())
}

func TestTimeString_CanonicalEquality(t *testing.T) {
	// "02:00 PM" и "14:00" одно и то же время после нормализации
	a, err := NewTimeStringFromString("02:00 PM")
	require.NoError(t, err)

	b, err := NewTimeStringFromString("14:00")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("14:00"))
	assert.True(t, TimeString("14:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	_, err = TimeString("bogus").AddMinutes(60)
	require.Error(t, err)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 14, 15, 4, 59, 0, time.UTC))
	assert.Equal(t, TimeString("15:04"), ts)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("14:00").Validate())
	assert.Error(t, TimeString("2:00 PM").Validate())
	assert.Error(t, TimeString("").Validate())
}
