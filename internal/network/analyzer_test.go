package network

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strrl/fakeprofile/internal/profile"
)

func refs(names ...string) []profile.UserRef {
	out := make([]profile.UserRef, 0, len(names))
	for _, n := range names {
		out = append(out, profile.UserRef(n))
	}
	return out
}

func TestCountsOnlyIsolationBands(t *testing.T) {
	a := NewAnalyzer()

	cases := []struct {
		followers int
		following int
		want      float64
	}{
		{5, 100, 0.5 * (0.8 + 0.2)},
		{30, 100, 0.5 * (0.5 + 0.2)},
		{80, 100, 0.5 * (0.3 + 0.2)},
		{500, 100, 0.5 * (0.1 + 0.2)},
		{30, 1500, 0.5 * (0.5 + 0.7)},
		{30, 600, 0.5 * (0.5 + 0.6)},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_%d", tc.followers, tc.following), func(t *testing.T) {
			res := a.Analyze(nil, nil, nil, tc.followers, tc.following)
			assert.InDelta(t, tc.want, res.NetworkIsolationScore, 0.0001)
		})
	}
}

func TestSetBasedIsolation(t *testing.T) {
	a := NewAnalyzer()

	// Every followed account follows back and every follower interacts.
	followers := refs("a", "b", "c", "d")
	following := refs("a", "b", "c", "d")
	res := a.Analyze(followers, following, followers, 4, 4)
	assert.InDelta(t, 0.0, res.NetworkIsolationScore, 0.0001)
	assert.Equal(t, 1.0, res.MutualConnectionRatio)
	assert.Equal(t, 1.0, res.Reciprocity)

	// No overlap at all.
	res = a.Analyze(refs("a", "b"), refs("x", "y"), nil, 2, 2)
	assert.InDelta(t, 1.0, res.NetworkIsolationScore, 0.0001)
	assert.Equal(t, 0.0, res.MutualConnectionRatio)
}

func TestNeutralRelationalSignalsWithoutLists(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze(nil, nil, nil, 500, 300)
	assert.True(t, res.Performed)
	assert.Equal(t, 0.5, res.MutualConnectionRatio)
	assert.Equal(t, 0.5, res.ClusteringCoefficient)
	assert.Equal(t, 0.5, res.Reciprocity)
}

func TestFollowerRatioConventionsCarryOver(t *testing.T) {
	a := NewAnalyzer()

	assert.Equal(t, 1.0, a.Analyze(nil, nil, nil, 0, 0).FollowersToFollowing)
	assert.Equal(t, 100.0, a.Analyze(nil, nil, nil, 10, 0).FollowersToFollowing)
	assert.Equal(t, 0.25, a.Analyze(nil, nil, nil, 25, 100).FollowersToFollowing)
}

func TestClusteringStaysInBand(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze(refs("a", "b", "c"), refs("a", "b", "d"), refs("a", "e"), 3, 3)
	assert.GreaterOrEqual(t, res.ClusteringCoefficient, 0.05)
	assert.LessOrEqual(t, res.ClusteringCoefficient, 0.8)
}

func TestNetworkScoreRisesForIsolatedAccounts(t *testing.T) {
	a := NewAnalyzer()

	isolated := a.Analyze(nil, nil, nil, 3, 2000)
	healthy := a.Analyze(nil, nil, nil, 900, 400)

	assert.Greater(t, isolated.NetworkSuspicionScore, healthy.NetworkSuspicionScore)
	assert.LessOrEqual(t, isolated.NetworkSuspicionScore, 1.0)
	assert.GreaterOrEqual(t, healthy.NetworkSuspicionScore, 0.0)
}

func TestDuplicateRefsCollapse(t *testing.T) {
	a := NewAnalyzer()

	res := a.Analyze(refs("a", "a", "a"), refs("a", "a"), nil, 3, 2)
	assert.Equal(t, 1.0, res.MutualConnectionRatio)
}
