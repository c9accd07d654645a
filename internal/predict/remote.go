package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// RemoteModel forwards normalized features to an external model server and
// maps its output to the three horizons. The output field names are not
// standardized across model servers, so extraction tolerates the common
// alternate spellings.
type RemoteModel struct {
	name        string
	description string
	baseURL     string
	client      *http.Client
	circuit     *gobreaker.CircuitBreaker
}

// NewRemoteModel points a named model at baseURL; the server is expected to
// answer POST {baseURL}/predict/{name}.
func NewRemoteModel(name, description, baseURL string, client *http.Client) *RemoteModel {
	return &RemoteModel{
		name:        name,
		description: description,
		baseURL:     baseURL,
		client:      client,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "model-server-" + name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

func (m *RemoteModel) Name() string        { return m.name }
func (m *RemoteModel) Description() string { return m.description }

// remoteFeatures is the normalized feature set sent to the model server,
// derived from the most recent reading plus the window length.
type remoteFeatures struct {
	AQI        float64 `json:"aqi"`
	PM25       float64 `json:"pm2_5"`
	PM10       float64 `json:"pm10"`
	CO         float64 `json:"carbon_monoxide"`
	NO2        float64 `json:"nitrogen_dioxide"`
	SO2        float64 `json:"sulphur_dioxide"`
	O3         float64 `json:"ozone"`
	InputHours int     `json:"input_hours"`
}

func (m *RemoteModel) Predict(ctx context.Context, history []aqi.HourlyReading) (aqi.Prediction, error) {
	if len(history) == 0 {
		return aqi.Prediction{}, fmt.Errorf("model %s: empty history", m.name)
	}

	latest := history[len(history)-1]
	payload, err := json.Marshal(remoteFeatures{
		AQI:        latest.AQI,
		PM25:       latest.PM25,
		PM10:       latest.PM10,
		CO:         latest.CO,
		NO2:        latest.NO2,
		SO2:        latest.SO2,
		O3:         latest.O3,
		InputHours: len(history),
	})
	if err != nil {
		return aqi.Prediction{}, err
	}

	result, err := m.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			fmt.Sprintf("%s/predict/%s", m.baseURL, m.name), bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := m.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("model server returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return aqi.Prediction{}, fmt.Errorf("model %s: %w", m.name, err)
	}

	body := result.([]byte)
	if !gjson.ValidBytes(body) {
		return aqi.Prediction{}, fmt.Errorf("model %s: response is not valid JSON", m.name)
	}

	aqi8h, ok8 := pickNumber(body, "predictions.aqi_8h", "aqi_8h", "aqi8h")
	aqi12h, ok12 := pickNumber(body, "predictions.aqi_12h", "aqi_12h", "aqi12h")
	aqi24h, ok24 := pickNumber(body, "predictions.aqi_24h", "aqi_24h", "aqi24h")
	if !(ok8 && ok12 && ok24) {
		return aqi.Prediction{}, fmt.Errorf("model %s: response missing horizon fields", m.name)
	}

	confidence, ok := pickNumber(body, "predictions.confidence", "confidence")
	if !ok || math.IsNaN(confidence) {
		confidence = 0.70
	}

	return aqi.Prediction{
		AQI8h:      clamp(aqi8h),
		AQI12h:     clamp(aqi12h),
		AQI24h:     clamp(aqi24h),
		Model:      m.name,
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	}, nil
}

// pickNumber returns the first numeric value found under the given paths.
func pickNumber(body []byte, paths ...string) (float64, bool) {
	for _, p := range paths {
		if v := gjson.GetBytes(body, p); v.Type == gjson.Number {
			return v.Float(), true
		}
	}
	return 0, false
}
