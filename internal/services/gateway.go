package services

import (
	"context"

	"aqi-dashboard/internal/models"
)

// Gateway produces the current observations for a ZIP code. The AirNow
// client implements it for production; tests substitute deterministic stubs.
// Every failure mode (network, HTTP status, timeout, open breaker) surfaces
// as a single error that callers treat as "no data".
type Gateway interface {
	Observations(ctx context.Context, zipCode string) ([]models.Observation, error)
}
