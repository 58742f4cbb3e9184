package domain

import (
	"time"

	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// UnavailabilityRecord marks a single staff slot as blocked.
// IsBooked distinguishes booking mirrors (written by the reservation flow)
// from staff-declared blackout time; only mirrors are removed on cancellation.
type UnavailabilityRecord struct {
	ID       int64
	StaffID  string
	Date     time.Time
	Time     types.TimeString
	IsBooked bool

	CreatedAt time.Time
}
