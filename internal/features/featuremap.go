package features

// Canonical feature names. These fourteen keys, in this order, form the
// vector handed to a trained classifier. Analyzers emit additional
// platform-specific keys on top of them.
const (
	AccountAgeDays          = "account_age_days"
	PostsPerDay             = "posts_per_day"
	FollowersCount          = "followers_count"
	FollowingCount          = "following_count"
	FollowersFollowingRatio = "followers_to_following_ratio"
	ProfilePicScore         = "profile_pic_score"
	BioLength               = "bio_length"
	HasExternalURL          = "has_external_url"
	SentimentScore          = "sentiment_score"
	ContentDiversity        = "content_diversity"
	EngagementRate          = "engagement_rate"
	PostingRegularity       = "posting_regularity"
	SuspiciousContentScore  = "suspicious_content_score"
	NetworkIsolationScore   = "network_isolation_score"
)

// CanonicalOrder is the fixed vector layout expected by classifier models.
var CanonicalOrder = []string{
	AccountAgeDays,
	PostsPerDay,
	FollowersCount,
	FollowingCount,
	FollowersFollowingRatio,
	ProfilePicScore,
	BioLength,
	HasExternalURL,
	SentimentScore,
	ContentDiversity,
	EngagementRate,
	PostingRegularity,
	SuspiciousContentScore,
	NetworkIsolationScore,
}

// neutralDefaults backs EnsureDefaults. A key that no analyzer produced gets
// a value that triggers no downstream threshold.
var neutralDefaults = map[string]float64{
	AccountAgeDays:          365,
	PostsPerDay:             0,
	FollowersCount:          0,
	FollowingCount:          0,
	FollowersFollowingRatio: 1.0,
	ProfilePicScore:         0.5,
	BioLength:               0,
	HasExternalURL:          0,
	SentimentScore:          0.5,
	ContentDiversity:        1.0,
	EngagementRate:          0.05,
	PostingRegularity:       0.5,
	SuspiciousContentScore:  0,
	NetworkIsolationScore:   0,
}

// FeatureMap is the canonical numeric representation of a profile. Boolean
// features are stored as 0/1 so the classifier vector build stays uniform.
type FeatureMap map[string]float64

// Merge copies src into m. Analyzers keep disjoint key namespaces by
// convention; where they overlap, the last writer wins.
func (m FeatureMap) Merge(src FeatureMap) {
	for k, v := range src {
		m[k] = v
	}
}

// EnsureDefaults guarantees every canonical key is present, so downstream
// weighting never has to branch on absence.
func (m FeatureMap) EnsureDefaults() {
	for key, def := range neutralDefaults {
		if _, ok := m[key]; !ok {
			m[key] = def
		}
	}
}

// Bool reports a 0/1-encoded feature as a boolean.
func (m FeatureMap) Bool(key string) bool {
	return m[key] >= 0.5
}

// Value returns the feature value, or fallback when the key is absent.
func (m FeatureMap) Value(key string, fallback float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
