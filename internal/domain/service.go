package domain

import (
	"errors"
	"strings"
)

// ServiceCategory represents a bookable service category
type ServiceCategory string

const (
	ServiceHaircut ServiceCategory = "haircut"
	ServiceTattoo  ServiceCategory = "tattoo"
)

// Specialization represents a staff member's trade
type Specialization string

const (
	SpecializationBarber       Specialization = "Barber"
	SpecializationTattooArtist Specialization = "TattooArtist"
)

// ErrUnknownService is returned when a service string is not in the closed set
var ErrUnknownService = errors.New("domain: unknown service category")

// ErrUnknownSpecialization is returned when a specialization string is not recognised
var ErrUnknownSpecialization = errors.New("domain: unknown specialization")

// serviceSpecializations maps each service to the staff specialization
// allowed to fulfil it
var serviceSpecializations = map[ServiceCategory]Specialization{
	ServiceHaircut: SpecializationBarber,
	ServiceTattoo:  SpecializationTattooArtist,
}

// ParseServiceCategory parses a service string into its canonical value
// (case-insensitive)
func ParseServiceCategory(s string) (ServiceCategory, error) {
	switch ServiceCategory(strings.ToLower(strings.TrimSpace(s))) {
	case ServiceHaircut:
		return ServiceHaircut, nil
	case ServiceTattoo:
		return ServiceTattoo, nil
	default:
		return "", ErrUnknownService
	}
}

// ParseSpecialization parses a specialization string into its canonical
// value. Matching ignores case and spaces, so "Tattoo Artist" and
// "TattooArtist" are the same specialization.
func ParseSpecialization(s string) (Specialization, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch key {
	case "barber":
		return SpecializationBarber, nil
	case "tattooartist":
		return SpecializationTattooArtist, nil
	default:
		return "", ErrUnknownSpecialization
	}
}

// SpecializationFor returns the staff specialization required for a service
func SpecializationFor(service ServiceCategory) (Specialization, bool) {
	spec, ok := serviceSpecializations[service]
	return spec, ok
}

// CanFulfil reports whether a staff member with the given specialization
// may fulfil the service
func CanFulfil(spec Specialization, service ServiceCategory) bool {
	required, ok := serviceSpecializations[service]
	return ok && required == spec
}
