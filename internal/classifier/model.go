package classifier

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strrl/fakeprofile/internal/features"
)

// ErrModelNotFound is returned by LoadModel when no model file exists at the
// given path. Callers treat this as "fall back to the heuristic".
var ErrModelNotFound = errors.New("model file not found")

// LinearModel is a logistic regression over the canonical feature vector,
// loaded from a YAML file produced offline.
type LinearModel struct {
	Bias    float64            `yaml:"bias"`
	Weights map[string]float64 `yaml:"weights"`
}

// LoadModel reads a LinearModel from path.
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var model LinearModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if len(model.Weights) == 0 {
		return nil, fmt.Errorf("model %s has no weights", path)
	}
	return &model, nil
}

// PredictProbability applies the logistic function to the weighted sum.
// The vector follows features.CanonicalOrder; features the model carries no
// weight for contribute nothing.
func (m *LinearModel) PredictProbability(vector []float64) (float64, error) {
	if len(vector) != len(features.CanonicalOrder) {
		return 0, fmt.Errorf("expected %d features, got %d", len(features.CanonicalOrder), len(vector))
	}

	sum := m.Bias
	for i, key := range features.CanonicalOrder {
		sum += m.Weights[key] * vector[i]
	}
	return 1 / (1 + math.Exp(-sum)), nil
}

// FeatureImportances reports normalized absolute weights.
func (m *LinearModel) FeatureImportances() map[string]float64 {
	total := 0.0
	for _, w := range m.Weights {
		total += math.Abs(w)
	}

	out := make(map[string]float64, len(m.Weights))
	if total == 0 {
		for key := range m.Weights {
			out[key] = 0
		}
		return out
	}
	for key, w := range m.Weights {
		out[key] = math.Abs(w) / total
	}
	return out
}
