package models

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tourForm() url.Values {
	return url.Values{
		"slug":   {"summer-tour"},
		"title":  {"Summer Tour"},
		"isTour": {"true"},
	}
}

func addStop(v url.Values, i int, city, country, start, end string) {
	v.Set(fmt.Sprintf("stops[%d][city]", i), city)
	v.Set(fmt.Sprintf("stops[%d][country]", i), country)
	v.Set(fmt.Sprintf("stops[%d][startTime]", i), start)
	v.Set(fmt.Sprintf("stops[%d][endTime]", i), end)
}

func TestParseEventFormDropsIncompleteStopsInLenientMode(t *testing.T) {
	v := tourForm()
	addStop(v, 0, "Berlin", "Germany", "2026-07-01T20:00", "2026-07-02T02:00")
	addStop(v, 1, "Paris", "", "2026-07-05T20:00", "2026-07-06T02:00")
	addStop(v, 2, "Amsterdam", "Netherlands", "2026-07-10T20:00", "2026-07-11T02:00")

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)
	require.Len(t, form.Stops, 2)

	assert.Equal(t, "Berlin", form.Stops[0].City)
	assert.Equal(t, "Amsterdam", form.Stops[1].City)
	assert.Equal(t, 0, form.Stops[0].OrderIndex)
	assert.Equal(t, 1, form.Stops[1].OrderIndex)
}

func TestParseEventFormRejectsIncompleteStopsInStrictMode(t *testing.T) {
	v := tourForm()
	addStop(v, 0, "Berlin", "Germany", "2026-07-01T20:00", "2026-07-02T02:00")
	addStop(v, 1, "Paris", "", "2026-07-05T20:00", "2026-07-06T02:00")

	_, err := ParseEventForm(v, StopParseStrict)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestParseEventFormStopsAtFirstMissingIndex(t *testing.T) {
	v := tourForm()
	addStop(v, 0, "Berlin", "Germany", "2026-07-01T20:00", "2026-07-02T02:00")
	// index 1 absent entirely; index 2 must be ignored
	addStop(v, 2, "Amsterdam", "Netherlands", "2026-07-10T20:00", "2026-07-11T02:00")

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)
	require.Len(t, form.Stops, 1)
	assert.Equal(t, "Berlin", form.Stops[0].City)
}

func TestParseEventFormParsesArtistLineup(t *testing.T) {
	v := tourForm()
	v.Set("artists[0][id]", "7")
	v.Set("artists[1][id]", "3")
	v.Set("artists[1][orderIndex]", "5")

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)
	require.Len(t, form.Artists, 2)

	assert.Equal(t, int64(7), form.Artists[0].ArtistID)
	assert.Equal(t, 0, form.Artists[0].OrderIndex)
	assert.Equal(t, int64(3), form.Artists[1].ArtistID)
	assert.Equal(t, 5, form.Artists[1].OrderIndex)
}

func TestNormalizeDerivesTourTimesFromStops(t *testing.T) {
	v := tourForm()
	addStop(v, 0, "Paris", "France", "2026-07-05T20:00", "2026-07-06T02:00")
	addStop(v, 1, "Berlin", "Germany", "2026-07-01T20:00", "2026-07-02T02:00")
	addStop(v, 2, "Amsterdam", "Netherlands", "2026-07-10T20:00", "2026-07-11T02:00")

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)

	agg, err := form.Normalize()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC), agg.Event.StartTime)
	assert.Equal(t, time.Date(2026, 7, 11, 2, 0, 0, 0, time.UTC), agg.Event.EndTime)
}

func TestNormalizeKeepsExplicitTimesOverStopBounds(t *testing.T) {
	v := tourForm()
	v.Set("startTime", "2026-06-01T18:00")
	v.Set("endTime", "2026-08-01T00:00")
	addStop(v, 0, "Berlin", "Germany", "2026-07-01T20:00", "2026-07-02T02:00")

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)

	agg, err := form.Normalize()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC), agg.Event.StartTime)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), agg.Event.EndTime)
}

func TestNormalizeRejectsNonTourWithoutTimes(t *testing.T) {
	v := url.Values{
		"slug":  {"club-night"},
		"title": {"Club Night"},
	}

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)

	_, err = form.Normalize()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestNormalizeRejectsTourWithoutTimesOrStops(t *testing.T) {
	form, err := ParseEventForm(tourForm(), StopParseLenient)
	require.NoError(t, err)

	_, err = form.Normalize()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestNormalizeRejectsMissingTitle(t *testing.T) {
	v := url.Values{
		"slug":      {"mystery"},
		"startTime": {"2026-07-01T20:00"},
		"endTime":   {"2026-07-02T02:00"},
	}

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)

	_, err = form.Normalize()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestNormalizeClearsStopsForNonTour(t *testing.T) {
	v := url.Values{
		"slug":      {"club-night"},
		"title":     {"Club Night"},
		"startTime": {"2026-07-01T20:00"},
		"endTime":   {"2026-07-02T02:00"},
	}
	addStop(v, 0, "Berlin", "Germany", "2026-07-01T20:00", "2026-07-02T02:00")

	form, err := ParseEventForm(v, StopParseLenient)
	require.NoError(t, err)

	agg, err := form.Normalize()
	require.NoError(t, err)
	assert.Empty(t, agg.Stops)
}

func TestParseFormTimeAcceptsRFC3339AndLocal(t *testing.T) {
	got, err := parseFormTime("2026-07-01T20:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC), *got)

	got, err = parseFormTime("2026-07-01T20:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC), *got)

	_, err = parseFormTime("July 1st")
	require.Error(t, err)
}
