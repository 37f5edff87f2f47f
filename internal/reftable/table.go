package reftable

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"aqi-dashboard/internal/models"
)

// Load reads the static city/ZIP reference table from a CSV file. The file
// must carry a header row with at least City and Zipcode columns; Latitude
// and Longitude columns are optional. Any problem with the file is fatal to
// the caller, there is no partial table.
func Load(path string) ([]models.LocationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading reference table %s: %w", path, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("reference table %s has no data rows", path)
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("reference table %s: %w", path, err)
	}

	rows := make([]models.LocationRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("reference table %s row %d: %w", path, i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

type columns struct {
	city, zip, lat, lon int
}

func headerIndex(header []string) (columns, error) {
	cols := columns{city: -1, zip: -1, lat: -1, lon: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "city":
			cols.city = i
		case "zipcode", "zip_code", "zip":
			cols.zip = i
		case "latitude", "lat":
			cols.lat = i
		case "longitude", "lon", "lng":
			cols.lon = i
		}
	}

	if cols.city == -1 || cols.zip == -1 {
		return cols, fmt.Errorf("missing required City/Zipcode columns in header %v", header)
	}
	return cols, nil
}

func parseRow(record []string, cols columns) (models.LocationRow, error) {
	if cols.city >= len(record) || cols.zip >= len(record) {
		return models.LocationRow{}, fmt.Errorf("short record %v", record)
	}

	city := strings.TrimSpace(record[cols.city])
	zip, err := normalizeZip(strings.TrimSpace(record[cols.zip]))
	if err != nil {
		return models.LocationRow{}, err
	}
	if city == "" {
		return models.LocationRow{}, fmt.Errorf("empty city for ZIP %s", zip)
	}

	row := models.LocationRow{City: city, ZipCode: zip}

	if cols.lat >= 0 && cols.lat < len(record) && cols.lon >= 0 && cols.lon < len(record) {
		latStr := strings.TrimSpace(record[cols.lat])
		lonStr := strings.TrimSpace(record[cols.lon])
		if latStr != "" && lonStr != "" {
			lat, err := strconv.ParseFloat(latStr, 64)
			if err != nil {
				return models.LocationRow{}, fmt.Errorf("bad latitude %q: %w", latStr, err)
			}
			lon, err := strconv.ParseFloat(lonStr, 64)
			if err != nil {
				return models.LocationRow{}, fmt.Errorf("bad longitude %q: %w", lonStr, err)
			}
			row.Latitude = &lat
			row.Longitude = &lon
		}
	}

	return row, nil
}

// normalizeZip left-pads numeric ZIP codes to five digits; CSV tools tend to
// strip leading zeros.
func normalizeZip(zip string) (string, error) {
	if zip == "" {
		return "", fmt.Errorf("empty ZIP code")
	}
	if len(zip) > 5 {
		return "", fmt.Errorf("ZIP code %q longer than five digits", zip)
	}
	for _, r := range zip {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("ZIP code %q is not numeric", zip)
		}
	}
	return strings.Repeat("0", 5-len(zip)) + zip, nil
}
