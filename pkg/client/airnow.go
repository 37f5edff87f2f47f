package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"aqi-dashboard/internal/models"
	"go.uber.org/zap"
)

const defaultAirNowURL = "https://www.airnowapi.org/aq/observation/zipCode/current/"

// AirNowClient fetches current per-pollutant observations by ZIP code from
// the AirNow observation API. It implements the gateway contract consumed by
// the enricher: a slice of observations or an error, nothing in between.
type AirNowClient struct {
	*BaseClient
	baseURL       string
	apiKey        string
	distanceMiles int
}

func NewAirNowClient(apiKey string, distanceMiles int, config ClientConfig, logger *zap.Logger) *AirNowClient {
	baseClient := NewBaseClient("airnow", config, logger)
	return &AirNowClient{
		BaseClient:    baseClient,
		baseURL:       defaultAirNowURL,
		apiKey:        apiKey,
		distanceMiles: distanceMiles,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests to point the client
// at a local server.
func (c *AirNowClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Observations returns the current observations within the configured search
// radius of a ZIP code. Individual records missing a parameter name or AQI
// are dropped; a ZIP with no reporting station nearby returns an empty slice
// and no error.
func (c *AirNowClient) Observations(ctx context.Context, zipCode string) ([]models.Observation, error) {
	params := url.Values{
		"format":   {"application/json"},
		"zipCode":  {zipCode},
		"distance": {strconv.Itoa(c.distanceMiles)},
		"API_KEY":  {c.apiKey},
	}

	body, err := c.GetWithRetry(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch observations for %s: %w", zipCode, err)
	}

	var raws []models.RawObservation
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse observations for %s: %w", zipCode, err)
	}

	observations := make([]models.Observation, 0, len(raws))
	for _, raw := range raws {
		obs, ok := models.ObservationFromRaw(raw)
		if !ok {
			c.logger.Debug("Dropping malformed observation record",
				zap.String("zip_code", zipCode),
				zap.String("parameter", raw.ParameterName))
			continue
		}
		observations = append(observations, obs)
	}

	return observations, nil
}
