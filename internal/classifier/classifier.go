// Package classifier turns a feature map into a fake/genuine verdict.
// A trained model is used when one is available; otherwise a fixed
// red-flag heuristic takes over.
package classifier

import (
	"fmt"

	"github.com/strrl/fakeprofile/internal/features"
)

// FakeThreshold is the probability above which a profile is called fake.
// Verdicts from both the trained and heuristic paths use the same cut.
const FakeThreshold = 0.7

// Model predicts the probability that a feature vector belongs to a fake
// profile. Vectors follow features.CanonicalOrder.
type Model interface {
	PredictProbability(vector []float64) (float64, error)
}

// ImportanceReporter is implemented by models that can explain themselves.
type ImportanceReporter interface {
	FeatureImportances() map[string]float64
}

// Decision is the outcome of classification.
type Decision struct {
	Probability float64
	IsFake      bool
	Importance  map[string]float64
}

// Decider produces a Decision from normalized features.
type Decider interface {
	Decide(m features.FeatureMap) (Decision, error)
}

// Trained wraps a Model.
type Trained struct {
	model Model
}

func NewTrained(model Model) *Trained {
	return &Trained{model: model}
}

func (t *Trained) Decide(m features.FeatureMap) (Decision, error) {
	vector := make([]float64, len(features.CanonicalOrder))
	for i, key := range features.CanonicalOrder {
		vector[i] = m.Value(key, 0)
	}

	prob, err := t.model.PredictProbability(vector)
	if err != nil {
		return Decision{}, fmt.Errorf("predict probability: %w", err)
	}
	prob = clamp01(prob)

	return Decision{
		Probability: prob,
		IsFake:      prob >= FakeThreshold,
		Importance:  t.importances(),
	}, nil
}

func (t *Trained) importances() map[string]float64 {
	if r, ok := t.model.(ImportanceReporter); ok {
		return r.FeatureImportances()
	}
	uniform := 1.0 / float64(len(features.CanonicalOrder))
	out := make(map[string]float64, len(features.CanonicalOrder))
	for _, key := range features.CanonicalOrder {
		out[key] = uniform
	}
	return out
}

// redFlag is one heuristic rule. fallback is used when the feature is absent
// from the map.
type redFlag struct {
	name      string
	key       string
	fallback  float64
	triggered func(v float64) bool
}

var redFlags = []redFlag{
	{"new_account", features.AccountAgeDays, 365, func(v float64) bool { return v < 30 }},
	{"high_following_ratio", features.FollowersFollowingRatio, 1, func(v float64) bool { return v < 0.1 }},
	{"excessive_posting", features.PostsPerDay, 2, func(v float64) bool { return v > 20 }},
	{"suspicious_profile_pic", features.ProfilePicScore, 0, func(v float64) bool { return v > 0.7 }},
	{"low_engagement", features.EngagementRate, 0.05, func(v float64) bool { return v < 0.01 }},
	{"suspicious_content", features.SuspiciousContentScore, 0, func(v float64) bool { return v > 0.7 }},
	{"isolated_network", features.NetworkIsolationScore, 0, func(v float64) bool { return v > 0.7 }},
	{"duplicate_content", features.ContentDiversity, 1, func(v float64) bool { return v < 0.3 }},
	{"no_bio", features.BioLength, 10, func(v float64) bool { return v < 5 }},
}

// Heuristic counts red flags and maps the count onto [0.3, 1.0].
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Decide(m features.FeatureMap) (Decision, error) {
	importance := make(map[string]float64, len(redFlags))
	count := 0
	for _, flag := range redFlags {
		if flag.triggered(m.Value(flag.key, flag.fallback)) {
			count++
			importance[flag.name] = 0.1
		} else {
			importance[flag.name] = 0
		}
	}

	prob := 0.3 + float64(count)/float64(len(redFlags))*0.7
	if prob > 1 {
		prob = 1
	}

	return Decision{
		Probability: prob,
		IsFake:      prob >= FakeThreshold,
		Importance:  importance,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
