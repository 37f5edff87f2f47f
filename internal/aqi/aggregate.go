package aqi

import (
	"aqi-dashboard/internal/models"
)

// Overall reduces the observations for one location to the single reading
// used everywhere downstream: the observation with the maximum AQI, per the
// EPA convention that a location's AQI is the worst of its pollutants.
//
// On a tie the first maximal observation in input order wins; the input order
// is upstream-defined and deliberately not re-sorted, so which pollutant is
// reported for a location with co-equal levels is stable across runs.
//
// The winning observation's category and coordinates are carried over
// verbatim. The classifier is only consulted when upstream omitted the
// category string. Returns nil for an empty list.
func Overall(observations []models.Observation) *models.OverallResult {
	if len(observations) == 0 {
		return nil
	}

	best := observations[0]
	for _, obs := range observations[1:] {
		if obs.AQI > best.AQI {
			best = obs
		}
	}

	category := best.Category
	if category == "" {
		category = CategoryForAQI(best.AQI)
	}

	return &models.OverallResult{
		AQI:       best.AQI,
		Category:  category,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}
}
