package models

// Pollutant parameter names as reported by AirNow.
const (
	ParameterPM25 = "PM2.5"
	ParameterPM10 = "PM10"
	ParameterO3   = "O3"
	ParameterNO2  = "NO2"
	ParameterSO2  = "SO2"
	ParameterCO   = "CO"
)

// RawObservation mirrors one record of the AirNow current-observation
// response. AQI is a pointer so a missing field is distinguishable from zero.
type RawObservation struct {
	DateObserved  string  `json:"DateObserved"`
	HourObserved  int     `json:"HourObserved"`
	LocalTimeZone string  `json:"LocalTimeZone"`
	ReportingArea string  `json:"ReportingArea"`
	StateCode     string  `json:"StateCode"`
	Latitude      float64 `json:"Latitude"`
	Longitude     float64 `json:"Longitude"`
	ParameterName string  `json:"ParameterName"`
	AQI           *int    `json:"AQI"`
	Category      struct {
		Number int    `json:"Number"`
		Name   string `json:"Name"`
	} `json:"Category"`
}

// Observation is one normalized pollutant reading for one location.
// Unrecognized parameter names are kept as-is; downstream code must not
// assume the parameter is one of the known constants.
type Observation struct {
	Parameter     string  `json:"parameter"`
	AQI           int     `json:"aqi"`
	Category      string  `json:"category"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ReportingArea string  `json:"reporting_area,omitempty"`
	StateCode     string  `json:"state_code,omitempty"`
	DateObserved  string  `json:"date_observed,omitempty"`
	HourObserved  int     `json:"hour_observed,omitempty"`
}

// ObservationFromRaw converts an upstream record into an Observation.
// Records without a parameter name or a usable AQI are rejected (ok=false)
// rather than surfaced as an error; a location with only malformed records
// simply yields fewer observations.
func ObservationFromRaw(raw RawObservation) (Observation, bool) {
	if raw.ParameterName == "" {
		return Observation{}, false
	}
	if raw.AQI == nil || *raw.AQI < 0 {
		return Observation{}, false
	}

	return Observation{
		Parameter:     raw.ParameterName,
		AQI:           *raw.AQI,
		Category:      raw.Category.Name,
		Latitude:      raw.Latitude,
		Longitude:     raw.Longitude,
		ReportingArea: raw.ReportingArea,
		StateCode:     raw.StateCode,
		DateObserved:  raw.DateObserved,
		HourObserved:  raw.HourObserved,
	}, true
}

// OverallResult is the single reading that summarizes a location: the
// observation with the highest AQI among all reported pollutants.
type OverallResult struct {
	AQI       int     `json:"aqi"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationRow is one row of the static city/ZIP reference table.
// Latitude/Longitude are optional; when absent they are resolved from the
// reporting station of the overall observation.
type LocationRow struct {
	City      string   `json:"city"`
	ZipCode   string   `json:"zip_code"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// EnrichedRow is a LocationRow plus the derived air-quality fields.
// The four derived fields are nil together when no observation could be
// produced for the row's ZIP code; they are never partially nil.
type EnrichedRow struct {
	City            string   `json:"city"`
	ZipCode         string   `json:"zip_code"`
	OverallAQI      *int     `json:"overall_aqi"`
	OverallCategory *string  `json:"overall_category"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// HasData reports whether the derived field group is populated.
func (r EnrichedRow) HasData() bool {
	return r.OverallAQI != nil
}

// Marker is one map pin derived from an enriched row with data.
type Marker struct {
	City      string  `json:"city"`
	ZipCode   string  `json:"zip_code"`
	AQI       int     `json:"aqi"`
	Category  string  `json:"category"`
	Color     string  `json:"color"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Popup     string  `json:"popup"`
}

// GlossaryEntry describes one pollutant for the dashboard glossary.
type GlossaryEntry struct {
	Parameter  string `json:"parameter"`
	Label      string `json:"label"`
	Definition string `json:"definition"`
	Source     string `json:"source"`
}
