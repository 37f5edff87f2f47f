package aqi

// EPA AQI category labels. CategoryUnknown is a sentinel for an absent AQI,
// distinct from all six real categories.
const (
	CategoryGood          = "Good"
	CategoryModerate      = "Moderate"
	CategoryUSG           = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy     = "Unhealthy"
	CategoryVeryUnhealthy = "Very Unhealthy"
	CategoryHazardous     = "Hazardous"
	CategoryUnknown       = "Unknown"
)

// ColorUnknown is the fallback color token for unrecognized categories.
const ColorUnknown = "gray"

// CategoryForAQI maps an AQI value to its EPA category. Breakpoints are
// inclusive and evaluated in ascending order. A negative value stands for an
// absent AQI and maps to CategoryUnknown, never to CategoryGood. There is no
// upper bound: everything above 300 is Hazardous.
func CategoryForAQI(aqi int) string {
	switch {
	case aqi < 0:
		return CategoryUnknown
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategoryUSG
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}

// ColorForCategory maps a category label to its display color token.
// Total over the six EPA categories; anything else, including
// CategoryUnknown, gets the gray fallback so the presentation layer never
// sees an unmapped category.
func ColorForCategory(category string) string {
	switch category {
	case CategoryGood:
		return "green"
	case CategoryModerate:
		return "yellow"
	case CategoryUSG:
		return "orange"
	case CategoryUnhealthy:
		return "red"
	case CategoryVeryUnhealthy:
		return "purple"
	case CategoryHazardous:
		return "maroon"
	default:
		return ColorUnknown
	}
}
