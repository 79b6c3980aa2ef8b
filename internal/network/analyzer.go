// Package network scores the relational structure of a profile: follower
// ratio, isolation, reciprocity and clustering. When relationship lists are
// unavailable it falls back to banded estimates from the raw counts.
package network

import (
	"github.com/strrl/fakeprofile/internal/features"
	"github.com/strrl/fakeprofile/internal/profile"
)

type Result struct {
	Performed             bool
	FollowersToFollowing  float64
	NetworkIsolationScore float64
	MutualConnectionRatio float64
	ClusteringCoefficient float64
	Reciprocity           float64
	NetworkSuspicionScore float64
	FollowersCount        int
	FollowingCount        int
}

func (r Result) Features() features.FeatureMap {
	m := features.FeatureMap{
		"network_analysis_performed":     0,
		features.FollowersFollowingRatio: r.FollowersToFollowing,
		features.NetworkIsolationScore:   r.NetworkIsolationScore,
		"mutual_connection_ratio":        r.MutualConnectionRatio,
		"clustering_coefficient":         r.ClusteringCoefficient,
		"reciprocity":                    r.Reciprocity,
		"network_score":                  r.NetworkSuspicionScore,
	}
	if r.Performed {
		m["network_analysis_performed"] = 1
	}
	return m
}

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores relational structure. followers/following/interactions may
// be nil; followersCount and followingCount are always available.
func (a *Analyzer) Analyze(followers, following, interactions []profile.UserRef, followersCount, followingCount int) Result {
	followerSet := refSet(followers)
	followingSet := refSet(following)
	interactionSet := refSet(interactions)

	ratio := features.FollowerRatio(followersCount, followingCount)

	var isolation float64
	if len(followerSet) > 0 || len(followingSet) > 0 || len(interactionSet) > 0 {
		isolation = isolationFromSets(followerSet, followingSet, interactionSet)
	} else {
		isolation = estimateIsolation(followersCount, followingCount)
	}

	mutual := 0.5
	clustering := 0.5
	reciprocity := 0.5
	if len(followerSet) > 0 && len(followingSet) > 0 {
		mutual = overlapRatio(followerSet, followingSet)
		clustering = estimateClustering(followerSet, followingSet, interactionSet)
		reciprocity = overlapRatio(followerSet, followingSet)
	}

	return Result{
		Performed:             true,
		FollowersToFollowing:  ratio,
		NetworkIsolationScore: isolation,
		MutualConnectionRatio: mutual,
		ClusteringCoefficient: clustering,
		Reciprocity:           reciprocity,
		NetworkSuspicionScore: networkScore(isolation, mutual, clustering, reciprocity, followersCount, followingCount),
		FollowersCount:        followersCount,
		FollowingCount:        followingCount,
	}
}

func refSet(refs []profile.UserRef) map[string]struct{} {
	set := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		if r != "" {
			set[string(r)] = struct{}{}
		}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// overlapRatio is the follower-following intersection size over the
// following set size, neutral when the following set is empty.
func overlapRatio(followerSet, followingSet map[string]struct{}) float64 {
	if len(followingSet) == 0 {
		return 0.5
	}
	return float64(intersectionSize(followerSet, followingSet)) / float64(len(followingSet))
}

// isolationFromSets: more mutual connections and follower interaction means
// less isolation.
func isolationFromSets(followerSet, followingSet, interactionSet map[string]struct{}) float64 {
	interactionRatio := 0.0
	if len(followerSet) > 0 {
		interactionRatio = float64(intersectionSize(followerSet, interactionSet)) / float64(len(followerSet))
	}

	mutualRatio := 0.0
	if len(followingSet) > 0 {
		mutualRatio = float64(intersectionSize(followerSet, followingSet)) / float64(len(followingSet))
	}

	return 1.0 - (0.7*mutualRatio + 0.3*interactionRatio)
}

// estimateIsolation uses banded thresholds when only counts are known.
func estimateIsolation(followersCount, followingCount int) float64 {
	var followerFactor float64
	switch {
	case followersCount < 10:
		followerFactor = 0.8
	case followersCount < 50:
		followerFactor = 0.5
	case followersCount < 100:
		followerFactor = 0.3
	default:
		followerFactor = 0.1
	}

	var followingFactor float64
	switch {
	case followingCount > 1000 && followersCount < 100:
		followingFactor = 0.7
	case followingCount > 500 && followersCount < 50:
		followingFactor = 0.6
	default:
		followingFactor = 0.2
	}

	return 0.5*followerFactor + 0.5*followingFactor
}

// estimateClustering normalizes overlap across the three relation sets and
// rescales into the typical [0.05, 0.8] band.
func estimateClustering(followerSet, followingSet, interactionSet map[string]struct{}) float64 {
	totalOverlap := intersectionSize(followerSet, followingSet) +
		intersectionSize(followerSet, interactionSet) +
		intersectionSize(followingSet, interactionSet)

	totalSize := len(followerSet) + len(followingSet) + len(interactionSet)
	if totalSize == 0 {
		return 0.5
	}

	raw := float64(totalOverlap) / float64(totalSize)
	return 0.05 + raw*0.75
}

// networkScore accumulates fixed suspicion increments, capped at 1.0.
func networkScore(isolation, mutual, clustering, reciprocity float64, followersCount, followingCount int) float64 {
	suspicion := 0.0

	switch {
	case followersCount < 10:
		suspicion += 0.3
	case followersCount < 50:
		suspicion += 0.2
	}

	if followingCount > 0 {
		ratio := float64(followersCount) / float64(followingCount)
		switch {
		case ratio < 0.1:
			suspicion += 0.25
		case ratio < 0.3:
			suspicion += 0.15
		}
	}

	suspicion += isolation * 0.2
	suspicion += (1 - mutual) * 0.15
	suspicion += (1 - clustering) * 0.1
	suspicion += (1 - reciprocity) * 0.1

	if suspicion > 1 {
		return 1
	}
	return suspicion
}
