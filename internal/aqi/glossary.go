package aqi

import (
	"aqi-dashboard/internal/models"
)

// Glossary returns the static pollutant reference shown on the dashboard,
// one entry per EPA criteria pollutant, in a fixed display order.
func Glossary() []models.GlossaryEntry {
	return []models.GlossaryEntry{
		{
			Parameter:  models.ParameterPM25,
			Label:      "Fine Particulate Matter (PM2.5)",
			Definition: "Particles 2.5 micrometers and smaller, small enough to reach deep into the lungs and bloodstream.",
			Source:     "Wildfire smoke, vehicle exhaust, wood burning, industrial combustion.",
		},
		{
			Parameter:  models.ParameterPM10,
			Label:      "Coarse Particulate Matter (PM10)",
			Definition: "Inhalable particles 10 micrometers and smaller, including dust and pollen.",
			Source:     "Road and construction dust, agriculture, crushing and grinding operations.",
		},
		{
			Parameter:  models.ParameterO3,
			Label:      "Ground-level Ozone (O3)",
			Definition: "A reactive gas formed when nitrogen oxides and volatile organic compounds react in sunlight.",
			Source:     "Vehicle and industrial emissions reacting in sunlight; peaks on hot afternoons.",
		},
		{
			Parameter:  models.ParameterNO2,
			Label:      "Nitrogen Dioxide (NO2)",
			Definition: "A reddish-brown gas that irritates airways and contributes to ozone and particle formation.",
			Source:     "Cars, trucks, buses, power plants, and off-road equipment burning fuel.",
		},
		{
			Parameter:  models.ParameterSO2,
			Label:      "Sulfur Dioxide (SO2)",
			Definition: "A colorless gas with a sharp odor that harms the respiratory system.",
			Source:     "Fossil fuel combustion at power plants and other industrial facilities.",
		},
		{
			Parameter:  models.ParameterCO,
			Label:      "Carbon Monoxide (CO)",
			Definition: "An odorless, colorless gas that reduces the blood's ability to carry oxygen.",
			Source:     "Incomplete combustion in vehicles, wildfires, and fuel-burning appliances.",
		},
	}
}
