package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceCategory(t *testing.T) {
	got, err := ParseServiceCategory("haircut")
	require.NoError(t, err)
	assert.Equal(t, ServiceHaircut, got)

	got, err = ParseServiceCategory("TATTOO")
	require.NoError(t, err)
	assert.Equal(t, ServiceTattoo, got)

	_, err = ParseServiceCategory("massage")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestParseSpecialization(t *testing.T) {
	got, err := ParseSpecialization("Barber")
	require.NoError(t, err)
	assert.Equal(t, SpecializationBarber, got)

	got, err = ParseSpecialization("Tattoo Artist")
	require.NoError(t, err)
	assert.Equal(t, SpecializationTattooArtist, got)

	got, err = ParseSpecialization("tattooartist")
	require.NoError(t, err)
	assert.Equal(t, SpecializationTattooArtist, got)

	_, err = ParseSpecialization("plumber")
	assert.ErrorIs(t, err, ErrUnknownSpecialization)
}

func TestCanFulfil(t *testing.T) {
	assert.True(t, CanFulfil(SpecializationBarber, ServiceHaircut))
	assert.True(t, CanFulfil(SpecializationTattooArtist, ServiceTattoo))

	assert.False(t, CanFulfil(SpecializationBarber, ServiceTattoo))
	assert.False(t, CanFulfil(SpecializationTattooArtist, ServiceHaircut))
	assert.False(t, CanFulfil(SpecializationBarber, ServiceCategory("massage")))
}

func TestClosingHourFor(t *testing.T) {
	assert.Equal(t, ClosingHourShort, ClosingHourFor(ShortDay))
	assert.Equal(t, ClosingHourDefault, ClosingHourFor(time.Monday))
	assert.Equal(t, ClosingHourDefault, ClosingHourFor(time.Friday))
}
