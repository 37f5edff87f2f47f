package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestObservationFromRaw(t *testing.T) {
	t.Run("complete record", func(t *testing.T) {
		raw := RawObservation{
			DateObserved:  "2026-08-28",
			HourObserved:  14,
			ReportingArea: "NW Coastal LA",
			StateCode:     "CA",
			Latitude:      34.05,
			Longitude:     -118.46,
			ParameterName: ParameterPM25,
			AQI:           intPtr(42),
		}
		raw.Category.Number = 1
		raw.Category.Name = "Good"

		obs, ok := ObservationFromRaw(raw)
		require.True(t, ok)
		assert.Equal(t, ParameterPM25, obs.Parameter)
		assert.Equal(t, 42, obs.AQI)
		assert.Equal(t, "Good", obs.Category)
		assert.Equal(t, 34.05, obs.Latitude)
		assert.Equal(t, -118.46, obs.Longitude)
		assert.Equal(t, "NW Coastal LA", obs.ReportingArea)
	})

	t.Run("missing parameter name", func(t *testing.T) {
		raw := RawObservation{AQI: intPtr(50)}
		_, ok := ObservationFromRaw(raw)
		assert.False(t, ok)
	})

	t.Run("missing AQI", func(t *testing.T) {
		raw := RawObservation{ParameterName: ParameterO3}
		_, ok := ObservationFromRaw(raw)
		assert.False(t, ok)
	})

	t.Run("negative AQI", func(t *testing.T) {
		raw := RawObservation{ParameterName: ParameterO3, AQI: intPtr(-1)}
		_, ok := ObservationFromRaw(raw)
		assert.False(t, ok)
	})

	t.Run("zero AQI is valid", func(t *testing.T) {
		raw := RawObservation{ParameterName: ParameterCO, AQI: intPtr(0)}
		obs, ok := ObservationFromRaw(raw)
		require.True(t, ok)
		assert.Equal(t, 0, obs.AQI)
	})

	t.Run("unrecognized parameter is tolerated", func(t *testing.T) {
		raw := RawObservation{ParameterName: "UV_INDEX", AQI: intPtr(30)}
		obs, ok := ObservationFromRaw(raw)
		require.True(t, ok)
		assert.Equal(t, "UV_INDEX", obs.Parameter)
	})
}

func TestRawObservation_DecodesAirNowPayload(t *testing.T) {
	payload := []byte(`[{"DateObserved":"2026-08-28","HourObserved":14,"LocalTimeZone":"PST","ReportingArea":"NW Coastal LA","StateCode":"CA","Latitude":34.0505,"Longitude":-118.4566,"ParameterName":"O3","AQI":67,"Category":{"Number":2,"Name":"Moderate"}}]`)

	var raws []RawObservation
	require.NoError(t, json.Unmarshal(payload, &raws))
	require.Len(t, raws, 1)

	obs, ok := ObservationFromRaw(raws[0])
	require.True(t, ok)
	assert.Equal(t, "O3", obs.Parameter)
	assert.Equal(t, 67, obs.AQI)
	assert.Equal(t, "Moderate", obs.Category)
	assert.Equal(t, 14, obs.HourObserved)
}

func TestEnrichedRow_HasData(t *testing.T) {
	assert.False(t, EnrichedRow{City: "Fresno", ZipCode: "93721"}.HasData())

	aqi := 80
	assert.True(t, EnrichedRow{OverallAQI: &aqi}.HasData())
}
