package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// ForecastProvider implements aqi.CovariateProvider against the Open-Meteo
// forecast API, supplying the weather context for hourly readings.
type ForecastProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewForecastProvider(client *http.Client) *ForecastProvider {
	return &ForecastProvider{
		name:    "open-meteo-forecast",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPCfg(client),
		circuit: newCircuit("open-meteo-forecast"),
	}
}

func (p *ForecastProvider) Name() string {
	return p.name
}

func (p *ForecastProvider) FetchCovariates(ctx context.Context, loc aqi.Location, hours int) ([]aqi.Covariates, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
		values.Set("hourly", "temperature_2m,relative_humidity_2m,surface_pressure,wind_speed_10m,wind_direction_10m")
		values.Set("past_days", "3")
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
		return nil, fmt.Errorf("forecast payload is not valid JSON")
	}

	times := gjson.GetBytes(body, "hourly.time").Array()
	if len(times) == 0 {
		return nil, fmt.Errorf("forecast payload has no hourly time series")
	}

	// Older Open-Meteo deployments spell these without underscores.
	var (
		temp     = hourlySeries(body, "temperature_2m", "temperature")
		humidity = hourlySeries(body, "relative_humidity_2m", "relativehumidity_2m", "humidity")
		pressure = hourlySeries(body, "surface_pressure", "pressure_msl", "pressure")
		wind     = hourlySeries(body, "wind_speed_10m", "windspeed_10m", "wind_speed")
		windDir  = hourlySeries(body, "wind_direction_10m", "winddirection_10m", "wind_direction")
	)

	covs := make([]aqi.Covariates, 0, len(times))
	for i := range times {
		ts, ok := parseHourlyTime(times[i].String())
		if !ok {
			continue
		}

		tempV, _ := valueAt(temp, i)
		humV, _ := valueAt(humidity, i)
		presV, _ := valueAt(pressure, i)
		windV, _ := valueAt(wind, i)
		dirV, _ := valueAt(windDir, i)

		covs = append(covs, aqi.Covariates{
			Timestamp:     ts,
			Temperature:   tempV,
			Humidity:      humV,
			Pressure:      presV,
			WindSpeed:     windV,
			WindDirection: dirV,
		})
	}

	return covs, nil
}
