package features

import (
	"strings"
	"time"

	"github.com/strrl/fakeprofile/internal/profile"
)

const defaultAccountAgeDays = 365

// creationDateFormats are tried in order; first match wins.
var creationDateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// Normalizer converts heterogeneous raw profile fields into the canonical
// feature mapping. It is a pure function of its input; the clock is captured
// at construction so repeated runs over the same record agree.
type Normalizer struct {
	now time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now()}
}

// NewNormalizerAt pins the reference time, for deterministic tests.
func NewNormalizerAt(now time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize extracts account metrics, username lexical features, completeness
// and platform-specific extensions from a record.
func (n *Normalizer) Normalize(rec *profile.Record) FeatureMap {
	m := make(FeatureMap)

	n.accountMetrics(rec, m)
	n.contentMetrics(rec, m)
	n.profileMetrics(rec, m)

	switch strings.ToLower(strings.TrimSpace(rec.Platform)) {
	case "twitter", "x":
		n.twitterExtras(rec, m)
	case "instagram":
		n.instagramExtras(rec, m)
	case "facebook":
		n.facebookExtras(rec, m)
	}

	return m
}

func (n *Normalizer) accountMetrics(rec *profile.Record, m FeatureMap) {
	m[AccountAgeDays] = n.accountAgeDays(rec.CreationDate)

	followers := rec.FollowersCount
	if followers == 0 && rec.FriendCount > 0 {
		followers = rec.FriendCount
	}
	following := rec.FollowingCount

	m[FollowersCount] = float64(followers)
	m[FollowingCount] = float64(following)
	m[FollowersFollowingRatio] = FollowerRatio(followers, following)

	postCount := len(rec.Posts)
	if rec.PostCount != nil {
		postCount = *rec.PostCount
	}
	m["post_count"] = float64(postCount)

	age := m[AccountAgeDays]
	if age < 1 {
		age = 1
	}
	m[PostsPerDay] = float64(postCount) / age
}

func (n *Normalizer) accountAgeDays(raw string) float64 {
	if raw == "" {
		return defaultAccountAgeDays
	}
	for _, layout := range creationDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return n.now.Sub(t).Hours() / 24
		}
	}
	return defaultAccountAgeDays
}

// FollowerRatio implements the documented conventions: both zero means 1.0,
// followers with nothing followed maps to the sentinel 100.0.
func FollowerRatio(followers, following int) float64 {
	if following == 0 {
		if followers == 0 {
			return 1.0
		}
		return 100.0
	}
	return float64(followers) / float64(following)
}

func (n *Normalizer) contentMetrics(rec *profile.Record, m FeatureMap) {
	m[BioLength] = float64(len(rec.Bio))
	m[HasExternalURL] = boolFeature(rec.ExternalURLFlag())

	var texts []string
	for i := range rec.Posts {
		if body := rec.Posts[i].Body(); body != "" {
			texts = append(texts, body)
		}
	}

	if len(texts) == 0 {
		m["avg_post_length"] = 0
		m["hashtags_per_post"] = 0
		m["urls_per_post"] = 0
		m["mentions_per_post"] = 0
		return
	}

	var totalLen, hashtags, mentions, withURL int
	for _, text := range texts {
		totalLen += len(text)
		hashtags += strings.Count(text, "#")
		mentions += strings.Count(text, "@")
		if containsURLHint(text) {
			withURL++
		}
	}

	count := float64(len(texts))
	m["avg_post_length"] = float64(totalLen) / count
	m["hashtags_per_post"] = float64(hashtags) / count
	m["urls_per_post"] = float64(withURL) / count
	m["mentions_per_post"] = float64(mentions) / count
}

var urlHints = []string{"http://", "https://", "www.", ".com", ".net", ".org"}

func containsURLHint(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range urlHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func (n *Normalizer) profileMetrics(rec *profile.Record, m FeatureMap) {
	m["is_verified"] = boolFeature(rec.VerifiedFlag())
	m["is_private"] = boolFeature(rec.IsPrivate)

	username := rec.Username
	if username == "" {
		m["username_length"] = 0
		m["username_digit_ratio"] = 0
		m["username_underscore_count"] = 0
		m["username_max_consecutive_digits"] = 0
	} else {
		digits := 0
		maxRun, run := 0, 0
		for _, r := range username {
			if r >= '0' && r <= '9' {
				digits++
				run++
				if run > maxRun {
					maxRun = run
				}
			} else {
				run = 0
			}
		}
		length := len([]rune(username))
		m["username_length"] = float64(length)
		m["username_digit_ratio"] = float64(digits) / float64(length)
		m["username_underscore_count"] = float64(strings.Count(username, "_"))
		m["username_max_consecutive_digits"] = float64(maxRun)
	}

	// Completeness over a fixed field set, independent of platform.
	fields := []string{rec.Bio, rec.Location, rec.ProfilePicURL, rec.Name, rec.DisplayName}
	filled := 0
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	m["profile_completeness"] = float64(filled) / float64(len(fields))
}

func (n *Normalizer) twitterExtras(rec *profile.Record, m FeatureMap) {
	retweets := 0
	sources := make(map[string]struct{})
	for i := range rec.Posts {
		if rec.Posts[i].IsRetweet {
			retweets++
		}
		if rec.Posts[i].Source != "" {
			sources[rec.Posts[i].Source] = struct{}{}
		}
	}
	if len(rec.Posts) > 0 {
		m["retweet_ratio"] = float64(retweets) / float64(len(rec.Posts))
	} else {
		m["retweet_ratio"] = 0
	}

	m["has_default_profile_image"] = boolFeature(strings.Contains(rec.ProfilePicURL, "default_profile"))
	m["source_count"] = float64(len(sources))
	m["is_twitter_blue"] = boolFeature(rec.IsBlue)
}

func (n *Normalizer) instagramExtras(rec *profile.Record, m FeatureMap) {
	m["is_business_account"] = boolFeature(rec.IsBusinessAccount)
	m["has_highlights"] = boolFeature(rec.HasHighlights)
	m["has_igtv"] = boolFeature(rec.HasIGTV)

	if rec.FollowersCount > 0 {
		postCount := len(rec.Posts)
		if rec.PostCount != nil {
			postCount = *rec.PostCount
		}
		m["post_to_follower_ratio"] = float64(postCount) / float64(rec.FollowersCount)
	} else {
		m["post_to_follower_ratio"] = 0
	}
}

func (n *Normalizer) facebookExtras(rec *profile.Record, m FeatureMap) {
	m["page_likes_count"] = float64(rec.PageLikesCount)

	details := []string{rec.Work, rec.Education, rec.RelationshipStatus, rec.Location}
	filled := 0
	for _, f := range details {
		if f != "" {
			filled++
		}
	}
	m["profile_details_completeness"] = float64(filled) / float64(len(details))
	m["has_profile_details"] = boolFeature(rec.HasProfileDetails)
}
