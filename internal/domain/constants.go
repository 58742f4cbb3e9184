package domain

import "time"

// Studio schedule policy: hourly slots from the opening hour up to (and
// excluding) the closing hour. Saturday closes early, Sunday is fully closed.
const (
	OpeningHour        = 9
	ClosingHourDefault = 21
	ClosingHourShort   = 17

	ShortDay   = time.Saturday
	ClosureDay = time.Sunday

	SlotDurationMinutes = 60
)

// Repeat-booking policy: a client may hold at most MaxBookingsPerWindow
// non-cancelled appointments for the same service within the trailing
// FrequencyWindowDays, anchored at booking time.
const (
	FrequencyWindowDays  = 14
	MaxBookingsPerWindow = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxRemarksLength = 500
)

// ClosingHourFor returns the closing hour for the given weekday.
// On ClosureDay there are no slots at all; callers must check that first.
func ClosingHourFor(weekday time.Weekday) int {
	if weekday == ShortDay {
		return ClosingHourShort
	}
	return ClosingHourDefault
}
