package aqi

import (
	"testing"

	"aqi-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGlossary_CoversCriteriaPollutants(t *testing.T) {
	entries := Glossary()
	assert.Len(t, entries, 6)

	byParameter := make(map[string]models.GlossaryEntry, len(entries))
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Label)
		assert.NotEmpty(t, entry.Definition)
		assert.NotEmpty(t, entry.Source)
		byParameter[entry.Parameter] = entry
	}

	for _, parameter := range []string{
		models.ParameterPM25, models.ParameterPM10, models.ParameterO3,
		models.ParameterNO2, models.ParameterSO2, models.ParameterCO,
	} {
		assert.Contains(t, byParameter, parameter)
	}
}
