package aqi

import (
	"fmt"
	"time"
)

// Location is a geographic point readings are fetched for.
// Name is an optional reverse-geocoded display label.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
// Coordinates are rounded to four decimals (~11 m) so jittery client
// coordinates map to the same cache entry.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Latitude, l.Longitude)
}

// HourlyReading is one hour of normalized air-quality data, optionally
// enriched with weather covariates. Immutable once constructed.
//
// Units: CO in mg/m³, all other pollutants in µg/m³.
type HourlyReading struct {
	Timestamp time.Time `json:"timestamp"`

	CO   float64 `json:"carbon_monoxide"`
	NO2  float64 `json:"nitrogen_dioxide"`
	SO2  float64 `json:"sulphur_dioxide"`
	O3   float64 `json:"ozone"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	AQI  float64 `json:"aqi"`

	Temperature   float64 `json:"temperature_c,omitempty"`
	Humidity      float64 `json:"humidity_percent,omitempty"`
	Pressure      float64 `json:"pressure_hpa,omitempty"`
	WindSpeed     float64 `json:"wind_speed_ms,omitempty"`
	WindDirection float64 `json:"wind_direction_deg,omitempty"`
}

// Covariates is one hour of weather context fetched independently from the
// pollutant series and merged into readings by hour.
type Covariates struct {
	Timestamp     time.Time
	Temperature   float64
	Humidity      float64
	Pressure      float64
	WindSpeed     float64
	WindDirection float64
}

// Prediction holds AQI forecasts at the three fixed horizons. Immutable.
type Prediction struct {
	AQI8h      float64   `json:"aqi_8h"`
	AQI12h     float64   `json:"aqi_12h"`
	AQI24h     float64   `json:"aqi_24h"`
	Model      string    `json:"model"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}
