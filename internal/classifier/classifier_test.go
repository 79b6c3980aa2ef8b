package classifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/fakeprofile/internal/features"
)

// cleanFeatures triggers no red flag.
func cleanFeatures() features.FeatureMap {
	return features.FeatureMap{
		features.AccountAgeDays:          800,
		features.FollowersFollowingRatio: 1.2,
		features.PostsPerDay:             2,
		features.ProfilePicScore:         0.3,
		features.EngagementRate:          0.4,
		features.SuspiciousContentScore:  0.1,
		features.NetworkIsolationScore:   0.2,
		features.ContentDiversity:        0.8,
		features.BioLength:               40,
	}
}

// flaggedFeatures triggers all nine red flags.
func flaggedFeatures() features.FeatureMap {
	return features.FeatureMap{
		features.AccountAgeDays:          5,
		features.FollowersFollowingRatio: 0.05,
		features.PostsPerDay:             40,
		features.ProfilePicScore:         0.9,
		features.EngagementRate:          0.005,
		features.SuspiciousContentScore:  0.9,
		features.NetworkIsolationScore:   0.9,
		features.ContentDiversity:        0.1,
		features.BioLength:               0,
	}
}

func TestHeuristicNoFlags(t *testing.T) {
	h := NewHeuristic()

	d, err := h.Decide(cleanFeatures())
	require.NoError(t, err)

	assert.Equal(t, 0.3, d.Probability)
	assert.False(t, d.IsFake)
	for name, imp := range d.Importance {
		assert.Equal(t, 0.0, imp, "flag=%s", name)
	}
}

func TestHeuristicAllFlags(t *testing.T) {
	h := NewHeuristic()

	d, err := h.Decide(flaggedFeatures())
	require.NoError(t, err)

	assert.Equal(t, 1.0, d.Probability)
	assert.True(t, d.IsFake)
	assert.Len(t, d.Importance, 9)
	for name, imp := range d.Importance {
		assert.Equal(t, 0.1, imp, "flag=%s", name)
	}
}

func TestHeuristicFallbacksTriggerNothing(t *testing.T) {
	h := NewHeuristic()

	d, err := h.Decide(features.FeatureMap{})
	require.NoError(t, err)
	assert.Equal(t, 0.3, d.Probability)
	assert.False(t, d.IsFake)
}

func TestHeuristicVerdictMatchesThreshold(t *testing.T) {
	h := NewHeuristic()

	// Six flags: 0.3 + 6/9*0.7 ~0.767, above threshold.
	m := flaggedFeatures()
	m[features.ContentDiversity] = 0.8
	m[features.BioLength] = 40
	m[features.EngagementRate] = 0.4

	d, err := h.Decide(m)
	require.NoError(t, err)
	assert.True(t, d.IsFake)
	assert.InDelta(t, 0.3+6.0/9.0*0.7, d.Probability, 0.0001)

	// Five flags: 0.3 + 5/9*0.7 ~0.689, below.
	m[features.AccountAgeDays] = 800
	d, err = h.Decide(m)
	require.NoError(t, err)
	assert.False(t, d.IsFake)
}

type stubModel struct {
	prob       float64
	err        error
	lastVector []float64
}

func (s *stubModel) PredictProbability(v []float64) (float64, error) {
	s.lastVector = v
	return s.prob, s.err
}

func TestTrainedBuildsCanonicalVector(t *testing.T) {
	stub := &stubModel{prob: 0.8}
	tr := NewTrained(stub)

	m := cleanFeatures()
	d, err := tr.Decide(m)
	require.NoError(t, err)

	assert.True(t, d.IsFake)
	assert.Equal(t, 0.8, d.Probability)
	require.Len(t, stub.lastVector, len(features.CanonicalOrder))
	for i, key := range features.CanonicalOrder {
		assert.Equal(t, m.Value(key, 0), stub.lastVector[i], "key=%s", key)
	}
}

func TestTrainedClampsProbability(t *testing.T) {
	tr := NewTrained(&stubModel{prob: 1.7})
	d, err := tr.Decide(cleanFeatures())
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Probability)
}

func TestTrainedPropagatesModelError(t *testing.T) {
	tr := NewTrained(&stubModel{err: errors.New("bad vector")})
	_, err := tr.Decide(cleanFeatures())
	assert.Error(t, err)
}

func TestTrainedUniformImportancesWithoutReporter(t *testing.T) {
	tr := NewTrained(&stubModel{prob: 0.5})
	d, err := tr.Decide(cleanFeatures())
	require.NoError(t, err)

	assert.Len(t, d.Importance, len(features.CanonicalOrder))
	for key, imp := range d.Importance {
		assert.InDelta(t, 1.0/float64(len(features.CanonicalOrder)), imp, 0.0001, "key=%s", key)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel("testdata/does-not-exist.yaml")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestLinearModelLogistic(t *testing.T) {
	model := &LinearModel{
		Bias: 0,
		Weights: map[string]float64{
			features.SuspiciousContentScore: 2.0,
		},
	}

	vector := make([]float64, len(features.CanonicalOrder))
	p, err := model.PredictProbability(vector)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 0.0001)

	for i, key := range features.CanonicalOrder {
		if key == features.SuspiciousContentScore {
			vector[i] = 1.0
		}
	}
	p, err = model.PredictProbability(vector)
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)

	_, err = model.PredictProbability([]float64{1, 2})
	assert.Error(t, err)
}

func TestLinearModelImportancesNormalized(t *testing.T) {
	model := &LinearModel{
		Weights: map[string]float64{
			"a": 3.0,
			"b": -1.0,
		},
	}

	imp := model.FeatureImportances()
	assert.InDelta(t, 0.75, imp["a"], 0.0001)
	assert.InDelta(t, 0.25, imp["b"], 0.0001)
}
