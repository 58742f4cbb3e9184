package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/inkfade/IFS-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusApproved  AppointmentStatus = "Approved"
	StatusDenied    AppointmentStatus = "Denied"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusAbandoned AppointmentStatus = "Abandoned"
)

// ErrUnknownStatus is returned when a status string cannot be normalized
var ErrUnknownStatus = errors.New("domain: unknown appointment status")

// statusSynonyms maps legacy status spellings to canonical values.
// "Done" is a legacy synonym of Completed and must never be stored.
var statusSynonyms = map[string]AppointmentStatus{
	"done": StatusCompleted,
}

// NormalizeStatus parses a status string into its canonical value.
// Matching is case-insensitive and resolves legacy synonyms; normalization
// happens at the ingestion boundary only, stored statuses are always canonical.
func NormalizeStatus(s string) (AppointmentStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))

	if canonical, ok := statusSynonyms[key]; ok {
		return canonical, nil
	}

	for _, status := range allStatuses {
		if key == strings.ToLower(string(status)) {
			return status, nil
		}
	}

	return "", ErrUnknownStatus
}

var allStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusDenied,
	StatusCancelled,
	StatusCompleted,
	StatusAbandoned,
}

// TerminalStatuses are statuses from which no further transition is permitted
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
	StatusAbandoned,
}

// allowedTransitions defines the appointment status state machine.
// Denied is reachable only from Pending; terminal states have no outgoing edges.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:  {StatusApproved, StatusDenied, StatusCancelled, StatusCompleted, StatusAbandoned},
	StatusApproved: {StatusCancelled, StatusCompleted, StatusAbandoned},
}

// CanTransition reports whether the transition from -> to is allowed
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions
func (s AppointmentStatus) IsTerminal() bool {
	for _, terminal := range TerminalStatuses {
		if s == terminal {
			return true
		}
	}
	return false
}

// BlocksSlot reports whether an appointment in this status keeps its
// (staff, date, time) slot excluded from availability. Everything except
// Cancelled blocks the slot.
func (s AppointmentStatus) BlocksSlot() bool {
	return s != StatusCancelled
}

// Appointment represents a booked service appointment
type Appointment struct {
	ID          string // system-generated unique id (UUID)
	DisplayCode string // human-readable sequential code, e.g. "APT-000042"

	ClientID string
	StaffID  string
	Service  ServiceCategory

	AppointmentDate time.Time
	StartTime       types.TimeString
	Remarks         *string
	Status          AppointmentStatus

	// Denormalized display data
	ClientName string
	StaffName  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether the appointment belongs to the given client
func (a *Appointment) IsOwnedBy(clientID string) bool {
	return a.ClientID == clientID
}

// HasElapsed reports whether the appointment's slot lies in the past
// relative to now
func (a *Appointment) HasElapsed(now time.Time) bool {
	y, m, d := a.AppointmentDate.Date()
	slotEnd := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

	if t, err := time.Parse(types.Format24Hour, a.StartTime.String()); err == nil {
		slotEnd = time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()).
			Add(time.Duration(SlotDurationMinutes) * time.Minute)
	}

	return !slotEnd.After(now)
}

// AdminAppointmentsFilter фильтр для административной выборки записей
type AdminAppointmentsFilter struct {
	Status         *AppointmentStatus // конкретный статус (опционально)
	StaffID        *string            // фильтр по мастеру (опционально)
	HistoryOnly    bool               // только терминальные статусы
	ExcludeHistory bool               // только активные статусы
	Page           int
	PerPage        int
}
