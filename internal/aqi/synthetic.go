package aqi

import (
	"math"
	"time"
)

// Base pollutant levels for synthetic data, roughly a moderately polluted
// urban area. CO is in mg/m³, the rest in µg/m³.
const (
	basePM25 = 15.5
	basePM10 = 28.3
	baseCO   = 0.8
	baseNO2  = 22.1
	baseSO2  = 8.2
	baseO3   = 45.6
)

// GenerateSynthetic produces hours of plausible hourly readings ending at
// now, used when the upstream provider yields no usable data. The series
// follows a daily sinusoidal cycle with a 7-step variation pattern, oldest
// first.
func GenerateSynthetic(hours int, now time.Time) []HourlyReading {
	readings := make([]HourlyReading, 0, hours)

	for i := 0; i < hours; i++ {
		variation := 0.7 + float64(i%7)*0.1
		dailyCycle := 1.0 + 0.3*math.Sin(2*math.Pi*float64(i)/24)
		scale := variation * dailyCycle

		r := HourlyReading{
			Timestamp: now.Add(-time.Duration(hours-i-1) * time.Hour).Truncate(time.Hour),
			CO:        baseCO * scale,
			NO2:       baseNO2 * scale,
			SO2:       baseSO2 * scale,
			O3:        baseO3 * scale,
			PM25:      basePM25 * scale,
			PM10:      basePM10 * scale,
		}
		r.AQI = ComputeAQI(r.PM25, r.O3, r.NO2, r.SO2, r.CO*1000)
		readings = append(readings, r)
	}

	return readings
}

// SynthesizeFromCurrent builds a 48-hour pseudo-history around a single set
// of current pollutant readings, so history-based models can be applied to a
// point-in-time measurement. co is in mg/m³, the rest in µg/m³.
func SynthesizeFromCurrent(pm25, pm10, co, o3, no2, so2 float64, now time.Time) []HourlyReading {
	const hours = 48
	readings := make([]HourlyReading, 0, hours)

	for i := 0; i < hours; i++ {
		variation := 0.8 + float64(i%12)*0.05

		r := HourlyReading{
			Timestamp: now.Add(-time.Duration(hours-i) * time.Hour).Truncate(time.Hour),
			CO:        co * variation,
			NO2:       no2 * variation,
			SO2:       so2 * variation,
			O3:        o3 * variation,
			PM25:      pm25 * variation,
			PM10:      pm10 * variation,
		}
		r.AQI = ComputeAQI(r.PM25, r.O3, r.NO2, r.SO2, r.CO*1000)
		readings = append(readings, r)
	}

	return readings
}
