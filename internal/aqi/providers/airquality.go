package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// AirQualityProvider implements aqi.HistoryProvider against the Open-Meteo
// air-quality API.
type AirQualityProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAirQualityProvider(client *http.Client) *AirQualityProvider {
	return &AirQualityProvider{
		name:    "open-meteo-air-quality",
		baseURL: "https://air-quality-api.open-meteo.com/v1/air-quality",
		httpCfg: defaultHTTPCfg(client),
		circuit: newCircuit("open-meteo-air-quality"),
	}
}

func (p *AirQualityProvider) Name() string {
	return p.name
}

// FetchHourly returns up to hours of pollutant readings ending at the most
// recent complete hour, oldest first. Hours with null pollutant values are
// skipped; series missing from the payload default to zero.
func (p *AirQualityProvider) FetchHourly(ctx context.Context, loc aqi.Location, hours int) ([]aqi.HourlyReading, error) {
	buildRequest := func() (*http.Request, error) {
		end := time.Now().UTC()
		start := end.AddDate(0, 0, -3) // 3 days of data to ensure enough complete hours

		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
		values.Set("hourly", "pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone")
		values.Set("start_date", start.Format("2006-01-02"))
		values.Set("end_date", end.Format("2006-01-02"))
		values.Set("timezone", "UTC")

		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("air-quality payload is not valid JSON")
	}

	times := gjson.GetBytes(body, "hourly.time").Array()
	if len(times) == 0 {
		return nil, fmt.Errorf("air-quality payload has no hourly time series")
	}

	var (
		pm25 = hourlySeries(body, "pm2_5", "pm25")
		pm10 = hourlySeries(body, "pm10")
		co   = hourlySeries(body, "carbon_monoxide", "co")
		no2  = hourlySeries(body, "nitrogen_dioxide", "no2")
		so2  = hourlySeries(body, "sulphur_dioxide", "sulfur_dioxide", "so2")
		o3   = hourlySeries(body, "ozone", "o3")
	)

	// Walk backwards from the most recent hour, keeping complete hours only.
	readings := make([]aqi.HourlyReading, 0, hours)
	for i := len(times) - 1; i >= 0 && len(readings) < hours; i-- {
		ts, ok := parseHourlyTime(times[i].String())
		if !ok {
			continue
		}

		pm25V, ok1 := valueAt(pm25, i)
		pm10V, ok2 := valueAt(pm10, i)
		coUg, ok3 := valueAt(co, i)
		no2V, ok4 := valueAt(no2, i)
		so2V, ok5 := valueAt(so2, i)
		o3V, ok6 := valueAt(o3, i)
		if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
			continue
		}

		readings = append(readings, aqi.HourlyReading{
			Timestamp: ts,
			CO:        coUg / 1000, // µg/m³ -> mg/m³
			NO2:       no2V,
			SO2:       so2V,
			O3:        o3V,
			PM25:      pm25V,
			PM10:      pm10V,
			AQI:       aqi.ComputeAQI(pm25V, o3V, no2V, so2V, coUg),
		})
	}

	// Collected newest-first; flip to chronological order.
	for l, r := 0, len(readings)-1; l < r; l, r = l+1, r-1 {
		readings[l], readings[r] = readings[r], readings[l]
	}

	return readings, nil
}
