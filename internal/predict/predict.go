// Package predict maps hourly reading history to AQI forecasts at the fixed
// 8h/12h/24h horizons, via a registry of named models.
package predict

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// ErrUnknownModel is returned when a model name is not registered.
var ErrUnknownModel = errors.New("unknown model")

// Model produces a Prediction from hourly reading history. The history is
// treated as context; models are pre-trained artifacts consumed as black
// boxes.
type Model interface {
	Name() string
	Description() string
	Predict(ctx context.Context, history []aqi.HourlyReading) (aqi.Prediction, error)
}

// Registry holds the available models by name.
type Registry struct {
	models map[string]Model
}

// NewRegistry builds a registry; later models with the same name replace
// earlier ones, so remote models can shadow builtins.
func NewRegistry(models ...Model) *Registry {
	r := &Registry{models: make(map[string]Model, len(models))}
	for _, m := range models {
		r.models[m.Name()] = m
	}
	return r
}

// Get returns the named model or ErrUnknownModel.
func (r *Registry) Get(name string) (Model, error) {
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return m, nil
}

// Predict runs the named model over the history.
func (r *Registry) Predict(ctx context.Context, name string, history []aqi.HourlyReading) (aqi.Prediction, error) {
	m, err := r.Get(name)
	if err != nil {
		return aqi.Prediction{}, err
	}
	return m.Predict(ctx, history)
}

// Names lists registered model names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptions maps model names to their descriptions, for the /models
// endpoint.
func (r *Registry) Descriptions() map[string]string {
	out := make(map[string]string, len(r.models))
	for name, m := range r.models {
		out[name] = m.Description()
	}
	return out
}
