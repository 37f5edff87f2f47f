package api

import (
	"time"

	"aqi-dashboard/internal/aqi"
	"aqi-dashboard/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	enricher *services.Enricher
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(enricher *services.Enricher, logger *zap.Logger) *Handler {
	return &Handler{
		enricher: enricher,
		validate: validator.New(),
		logger:   logger,
	}
}

type lookupRequest struct {
	ZipCode string `validate:"required,len=5,numeric"`
}

// overallResponse is an OverallResult plus its display color.
type overallResponse struct {
	AQI       int     `json:"aqi"`
	Category  string  `json:"category"`
	Color     string  `json:"color"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// pollutantResponse is one breakdown entry with its own color.
type pollutantResponse struct {
	Parameter string `json:"parameter"`
	AQI       int    `json:"aqi"`
	Category  string `json:"category"`
	Color     string `json:"color"`
}

// GetLookup handles GET /api/v1/aqi/lookup
func (h *Handler) GetLookup(c *fiber.Ctx) error {
	req := lookupRequest{ZipCode: c.Query("zip")}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "zip parameter must be a 5-digit ZIP code",
		})
	}

	h.logger.Info("Looking up air quality", zap.String("zip_code", req.ZipCode))

	result, observations, err := h.enricher.Lookup(c.Context(), req.ZipCode)
	if err != nil {
		h.logger.Error("Lookup failed",
			zap.String("zip_code", req.ZipCode),
			zap.Error(err))

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":    "Failed to fetch air quality data",
			"zip_code": req.ZipCode,
		})
	}

	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":    "No air quality data available for this ZIP code",
			"zip_code": req.ZipCode,
		})
	}

	breakdown := make([]pollutantResponse, 0, len(observations))
	for _, obs := range observations {
		category := obs.Category
		if category == "" {
			category = aqi.CategoryForAQI(obs.AQI)
		}
		breakdown = append(breakdown, pollutantResponse{
			Parameter: obs.Parameter,
			AQI:       obs.AQI,
			Category:  category,
			Color:     aqi.ColorForCategory(category),
		})
	}

	return c.JSON(fiber.Map{
		"zip_code": req.ZipCode,
		"overall": overallResponse{
			AQI:       result.AQI,
			Category:  result.Category,
			Color:     aqi.ColorForCategory(result.Category),
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
		},
		"observations": breakdown,
	})
}

// GetTable handles GET /api/v1/aqi/table
func (h *Handler) GetTable(c *fiber.Ctx) error {
	rows := h.enricher.Table()

	return c.JSON(fiber.Map{
		"rows":         rows,
		"last_refresh": h.enricher.LastRefresh(),
	})
}

// GetMarkers handles GET /api/v1/aqi/markers
func (h *Handler) GetMarkers(c *fiber.Ctx) error {
	markers := h.enricher.Markers()

	return c.JSON(fiber.Map{
		"markers":      markers,
		"last_refresh": h.enricher.LastRefresh(),
	})
}

// GetGlossary handles GET /api/v1/glossary
func (h *Handler) GetGlossary(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"pollutants": aqi.Glossary(),
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":       "healthy",
		"timestamp":    time.Now(),
		"last_refresh": h.enricher.LastRefresh(),
		"uptime":       time.Since(startTime).String(),
		"stats":        h.enricher.Stats(),
	})
}

var startTime = time.Now()
