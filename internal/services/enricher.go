package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aqi-dashboard/internal/aqi"
	"aqi-dashboard/internal/models"
	"aqi-dashboard/internal/observability"
	"go.uber.org/zap"
)

// Enricher joins the static reference table with live AirNow data. A refresh
// walks the table strictly in row order, one blocking fetch per row, and
// swaps in the completed table at the end; readers never see a partial
// refresh. Row failures degrade to a nil derived group, they never abort the
// table.
type Enricher struct {
	gateway Gateway
	table   []models.LocationRow
	logger  *zap.Logger
	metrics *observability.Metrics

	mu           sync.RWMutex
	enriched     []models.EnrichedRow
	lastRefresh  time.Time
	refreshCount int
}

func NewEnricher(table []models.LocationRow, gateway Gateway, metrics *observability.Metrics, logger *zap.Logger) *Enricher {
	return &Enricher{
		gateway: gateway,
		table:   table,
		logger:  logger,
		metrics: metrics,
	}
}

// Refresh recomputes the derived fields for every row of the reference
// table. Returns the new table; the stored copy is only replaced once every
// row has been processed.
func (e *Enricher) Refresh(ctx context.Context) ([]models.EnrichedRow, error) {
	startTime := time.Now()
	enriched := make([]models.EnrichedRow, 0, len(e.table))

	withData := 0
	for _, row := range e.table {
		enrichedRow := e.enrichRow(ctx, row)
		if enrichedRow.HasData() {
			withData++
		}
		enriched = append(enriched, enrichedRow)

		if err := ctx.Err(); err != nil {
			// Abandoned refreshes leave the previous table in place.
			return nil, fmt.Errorf("table refresh abandoned: %w", err)
		}
	}

	duration := time.Since(startTime)

	e.mu.Lock()
	e.enriched = enriched
	e.lastRefresh = time.Now()
	e.refreshCount++
	e.mu.Unlock()

	e.metrics.RefreshDuration.Observe(duration.Seconds())
	e.metrics.RowsWithData.Set(float64(withData))
	e.metrics.RowsWithoutData.Set(float64(len(enriched) - withData))
	e.metrics.LastRefreshTime.Set(float64(time.Now().Unix()))

	e.logger.Info("Table refresh completed",
		zap.Int("rows", len(enriched)),
		zap.Int("rows_with_data", withData),
		zap.Duration("duration", duration))

	return enriched, nil
}

// enrichRow derives the overall AQI group for one row. The four derived
// fields are set together or not at all.
func (e *Enricher) enrichRow(ctx context.Context, row models.LocationRow) models.EnrichedRow {
	enriched := models.EnrichedRow{
		City:    row.City,
		ZipCode: row.ZipCode,
	}

	observations, err := e.gateway.Observations(ctx, row.ZipCode)
	if err != nil {
		e.metrics.FetchRequests.WithLabelValues(observability.OutcomeFailure).Inc()
		e.logger.Warn("No observations for row",
			zap.String("city", row.City),
			zap.String("zip_code", row.ZipCode),
			zap.Error(err))
		return enriched
	}

	result := aqi.Overall(observations)
	if result == nil {
		e.metrics.FetchRequests.WithLabelValues(observability.OutcomeEmpty).Inc()
		e.logger.Warn("Empty observation list for row",
			zap.String("city", row.City),
			zap.String("zip_code", row.ZipCode))
		return enriched
	}
	e.metrics.FetchRequests.WithLabelValues(observability.OutcomeSuccess).Inc()

	lat, lon := result.Latitude, result.Longitude
	if row.Latitude != nil && row.Longitude != nil {
		// Table coordinates win over the reporting station's.
		lat, lon = *row.Latitude, *row.Longitude
	}

	category := result.Category
	enriched.OverallAQI = &result.AQI
	enriched.OverallCategory = &category
	enriched.Latitude = &lat
	enriched.Longitude = &lon

	return enriched
}

// Lookup runs the single-ZIP flow: the overall result plus the raw
// observation list for the per-pollutant breakdown.
func (e *Enricher) Lookup(ctx context.Context, zipCode string) (*models.OverallResult, []models.Observation, error) {
	observations, err := e.gateway.Observations(ctx, zipCode)
	if err != nil {
		e.metrics.FetchRequests.WithLabelValues(observability.OutcomeFailure).Inc()
		return nil, nil, err
	}

	result := aqi.Overall(observations)
	if result == nil {
		e.metrics.FetchRequests.WithLabelValues(observability.OutcomeEmpty).Inc()
	} else {
		e.metrics.FetchRequests.WithLabelValues(observability.OutcomeSuccess).Inc()
	}

	return result, observations, nil
}

// Table returns a copy of the last completed enriched table. Empty until the
// first refresh finishes.
func (e *Enricher) Table() []models.EnrichedRow {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rows := make([]models.EnrichedRow, len(e.enriched))
	copy(rows, e.enriched)
	return rows
}

// Markers derives one map marker per enriched row with data, preserving
// table order.
func (e *Enricher) Markers() []models.Marker {
	rows := e.Table()

	markers := make([]models.Marker, 0, len(rows))
	for _, row := range rows {
		if !row.HasData() {
			continue
		}
		markers = append(markers, models.Marker{
			City:      row.City,
			ZipCode:   row.ZipCode,
			AQI:       *row.OverallAQI,
			Category:  *row.OverallCategory,
			Color:     aqi.ColorForCategory(*row.OverallCategory),
			Latitude:  *row.Latitude,
			Longitude: *row.Longitude,
			Popup:     fmt.Sprintf("%s (%s): AQI %d, %s", row.City, row.ZipCode, *row.OverallAQI, *row.OverallCategory),
		})
	}

	return markers
}

func (e *Enricher) LastRefresh() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastRefresh
}

func (e *Enricher) Stats() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()

	withData := 0
	for _, row := range e.enriched {
		if row.HasData() {
			withData++
		}
	}

	return map[string]interface{}{
		"table_rows":        len(e.table),
		"rows_with_data":    withData,
		"rows_without_data": len(e.enriched) - withData,
		"refresh_count":     e.refreshCount,
		"last_refresh":      e.lastRefresh,
	}
}
