// Package indicators derives human-readable warning signs and
// recommendations from a feature map and a verdict.
package indicators

import "github.com/strrl/fakeprofile/internal/features"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Indicator struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// rule thresholds mirror the classifier's red flags where they overlap, but
// indicators exist for readers, not for scoring.
type rule struct {
	indicator Indicator
	triggered func(m features.FeatureMap) bool
}

var rules = []rule{
	{
		Indicator{"New Account", "Account was created recently", SeverityMedium},
		func(m features.FeatureMap) bool { return m.Value(features.AccountAgeDays, 365) < 30 },
	},
	{
		Indicator{"Following/Follower Imbalance", "Account follows many users but has few followers", SeverityHigh},
		func(m features.FeatureMap) bool { return m.Value(features.FollowersFollowingRatio, 1) < 0.1 },
	},
	{
		Indicator{"Excessive Posting", "Account posts with unusually high frequency", SeverityMedium},
		func(m features.FeatureMap) bool { return m.Value(features.PostsPerDay, 2) > 20 },
	},
	{
		Indicator{"Suspicious Profile Picture", "Profile picture shows signs of being AI-generated or stock photo", SeverityHigh},
		func(m features.FeatureMap) bool { return m.Value(features.ProfilePicScore, 0) > 0.7 },
	},
	{
		Indicator{"Low Engagement", "Posts receive very little engagement relative to follower count", SeverityMedium},
		func(m features.FeatureMap) bool { return m.Value(features.EngagementRate, 0.05) < 0.01 },
	},
	{
		Indicator{"Repetitive Content", "Account posts very similar content repeatedly", SeverityMedium},
		func(m features.FeatureMap) bool { return m.Value(features.ContentDiversity, 1) < 0.3 },
	},
	{
		Indicator{"Suspicious Content", "Content contains patterns associated with fake accounts", SeverityHigh},
		func(m features.FeatureMap) bool { return m.Value(features.SuspiciousContentScore, 0) > 0.7 },
	},
	{
		Indicator{"Isolated Network", "Account has minimal interaction with legitimate accounts", SeverityHigh},
		func(m features.FeatureMap) bool { return m.Value(features.NetworkIsolationScore, 0) > 0.7 },
	},
}

// FromFeatures evaluates every rule in a fixed order and returns those that
// fire. The slice is never nil.
func FromFeatures(m features.FeatureMap) []Indicator {
	out := []Indicator{}
	for _, r := range rules {
		if r.triggered(m) {
			out = append(out, r.indicator)
		}
	}
	return out
}

// Recommendations builds reader-facing advice: one overall line keyed on the
// verdict and probability, then per-indicator follow-ups.
func Recommendations(isFake bool, probability float64, inds []Indicator) []string {
	var recs []string
	switch {
	case isFake && probability > 0.9:
		recs = append(recs, "This profile is highly likely to be fake. Consider blocking and reporting.")
	case isFake:
		recs = append(recs, "This profile shows several suspicious patterns. Exercise caution when interacting.")
	case probability > 0.4:
		recs = append(recs, "This profile shows some suspicious patterns but may be legitimate. Verify before engaging.")
	default:
		recs = append(recs, "This profile appears to be legitimate based on our analysis.")
	}

	for _, ind := range inds {
		switch ind.Name {
		case "New Account":
			recs = append(recs, "This is a new account. Consider waiting for a longer activity history before engaging.")
		case "Suspicious Profile Picture":
			recs = append(recs, "Verify the profile picture by performing a reverse image search.")
		case "Suspicious Content":
			recs = append(recs, "Review the content posted by this account carefully before engaging.")
		}
	}
	return recs
}
