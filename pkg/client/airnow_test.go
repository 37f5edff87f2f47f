package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aqi-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		RetryDelay:     time.Millisecond,
		Multiplier:     2,
		BreakerTimeout: time.Second,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *AirNowClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewAirNowClient("test-key", 25, testClientConfig(), zap.NewNop())
	c.SetBaseURL(server.URL)
	return c
}

func TestAirNowClient_Observations(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"DateObserved":"2026-08-28","HourObserved":14,"ReportingArea":"Metro LA","StateCode":"CA","Latitude":34.06,"Longitude":-118.24,"ParameterName":"PM2.5","AQI":42,"Category":{"Number":1,"Name":"Good"}},
			{"DateObserved":"2026-08-28","HourObserved":14,"ReportingArea":"Metro LA","StateCode":"CA","Latitude":34.06,"Longitude":-118.24,"ParameterName":"O3","AQI":110,"Category":{"Number":3,"Name":"Unhealthy for Sensitive Groups"}}
		]`))
	})

	observations, err := client.Observations(context.Background(), "90012")
	require.NoError(t, err)
	require.Len(t, observations, 2)

	assert.Equal(t, models.ParameterPM25, observations[0].Parameter)
	assert.Equal(t, 42, observations[0].AQI)
	assert.Equal(t, "Good", observations[0].Category)
	assert.Equal(t, 110, observations[1].AQI)

	// AirNow query contract.
	assert.Equal(t, []string{"application/json"}, gotQuery["format"])
	assert.Equal(t, []string{"90012"}, gotQuery["zipCode"])
	assert.Equal(t, []string{"25"}, gotQuery["distance"])
	assert.Equal(t, []string{"test-key"}, gotQuery["API_KEY"])
}

func TestAirNowClient_DropsMalformedRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Middle record has no AQI, last has no parameter name.
		_, _ = w.Write([]byte(`[
			{"ParameterName":"PM2.5","AQI":40,"Category":{"Number":1,"Name":"Good"}},
			{"ParameterName":"O3","Category":{"Number":0,"Name":""}},
			{"AQI":70,"Category":{"Number":2,"Name":"Moderate"}}
		]`))
	})

	observations, err := client.Observations(context.Background(), "90012")
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, models.ParameterPM25, observations[0].Parameter)
}

func TestAirNowClient_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	observations, err := client.Observations(context.Background(), "96001")
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestAirNowClient_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Observations(context.Background(), "90012")
	assert.Error(t, err)
}

func TestAirNowClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"WebServiceError":[{"Message":"Invalid API key"}]}`))
	})

	_, err := client.Observations(context.Background(), "90012")
	assert.Error(t, err)
}

func TestBaseClient_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	t.Cleanup(server.Close)

	config := testClientConfig()
	config.MaxRetries = 3
	base := NewBaseClient("test", config, zap.NewNop())

	body, err := base.GetWithRetry(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)
	assert.Equal(t, 3, attempts)
}

func TestBaseClient_NoRetryOnClientError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	config := testClientConfig()
	config.MaxRetries = 3
	base := NewBaseClient("test", config, zap.NewNop())

	_, err := base.GetWithRetry(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
