package aqi

// pm25Breakpoints are the EPA concentration/index breakpoints for PM2.5,
// the dominant pollutant in this composite.
var pm25Breakpoints = []struct {
	concLow, concHigh float64
	aqiLow, aqiHigh   float64
}{
	{0, 12, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 500, 301, 500},
}

// ComputeAQI derives a composite AQI from pollutant concentrations.
// PM2.5 is interpolated over the EPA breakpoints; the remaining pollutants
// contribute capped additive factors. The result is clamped to [0, 500].
//
// pm25, o3, no2, so2 and co are all in µg/m³.
func ComputeAQI(pm25, o3, no2, so2, co float64) float64 {
	pm25AQI := 500.0 // above all breakpoints
	for _, bp := range pm25Breakpoints {
		if pm25 >= bp.concLow && pm25 <= bp.concHigh {
			pm25AQI = (bp.aqiHigh-bp.aqiLow)/(bp.concHigh-bp.concLow)*(pm25-bp.concLow) + bp.aqiLow
			break
		}
	}

	total := pm25AQI +
		capped(o3/100)*20 +
		capped(no2/100)*15 +
		capped(so2/20)*15 +
		capped(co/1000)*10

	return clampAQI(total)
}

func capped(ratio float64) float64 {
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

func clampAQI(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 500 {
		return 500
	}
	return v
}
