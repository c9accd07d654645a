package aqi

// Category is one of the six EPA severity bands for an AQI value.
type Category string

const (
	CategoryGood          Category = "Good"
	CategoryModerate      Category = "Moderate"
	CategorySensitive     Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy     Category = "Unhealthy"
	CategoryVeryUnhealthy Category = "Very Unhealthy"
	CategoryHazardous     Category = "Hazardous"
)

// Classify maps an AQI value to its severity band. Upper bounds are
// inclusive: 50 is still Good, 50.1 is Moderate.
func Classify(aqi float64) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategorySensitive
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}

// Color returns the standard EPA display color for the band.
func (c Category) Color() string {
	switch c {
	case CategoryGood:
		return "#00E400"
	case CategoryModerate:
		return "#FFFF00"
	case CategorySensitive:
		return "#FF7E00"
	case CategoryUnhealthy:
		return "#FF0000"
	case CategoryVeryUnhealthy:
		return "#8F3F97"
	default:
		return "#7E0023"
	}
}
