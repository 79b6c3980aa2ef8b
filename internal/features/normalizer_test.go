package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/strrl/fakeprofile/internal/profile"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestAccountAgeFromCreationDate(t *testing.T) {
	n := NewNormalizerAt(testNow)

	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"date only", "2024-05-02", 30},
		{"iso", "2024-05-02T00:00:00", 30},
		{"rfc3339", "2024-05-02T00:00:00Z", 30},
		{"slashes", "2024/05/02", 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := n.Normalize(&profile.Record{Username: "u", CreationDate: tc.raw})
			assert.InDelta(t, tc.want, m[AccountAgeDays], 0.01)
		})
	}
}

func TestAccountAgeDefaultsWhenUnparseable(t *testing.T) {
	n := NewNormalizerAt(testNow)

	for _, raw := range []string{"", "last spring", "02/05/2024"} {
		m := n.Normalize(&profile.Record{Username: "u", CreationDate: raw})
		assert.Equal(t, float64(365), m[AccountAgeDays], "raw=%q", raw)
	}
}

func TestFollowerRatioConventions(t *testing.T) {
	assert.Equal(t, 1.0, FollowerRatio(0, 0))
	assert.Equal(t, 100.0, FollowerRatio(50, 0))
	assert.Equal(t, 0.5, FollowerRatio(50, 100))
	assert.Equal(t, 2.0, FollowerRatio(100, 50))
}

func TestFollowersFallBackToFriendCount(t *testing.T) {
	n := NewNormalizerAt(testNow)
	m := n.Normalize(&profile.Record{Username: "u", FriendCount: 120})
	assert.Equal(t, float64(120), m[FollowersCount])
}

func TestPostsPerDayUsesDeclaredPostCount(t *testing.T) {
	n := NewNormalizerAt(testNow)
	count := 60
	m := n.Normalize(&profile.Record{
		Username:     "u",
		CreationDate: "2024-05-02",
		PostCount:    &count,
		Posts:        []profile.Post{{Text: "only one"}},
	})

	assert.Equal(t, float64(60), m["post_count"])
	assert.InDelta(t, 2.0, m[PostsPerDay], 0.01)
}

func TestUsernameLexicalFeatures(t *testing.T) {
	n := NewNormalizerAt(testNow)
	m := n.Normalize(&profile.Record{Username: "user_12345_x9"})

	assert.Equal(t, float64(13), m["username_length"])
	assert.Equal(t, float64(2), m["username_underscore_count"])
	assert.Equal(t, float64(5), m["username_max_consecutive_digits"])
	assert.InDelta(t, 6.0/13.0, m["username_digit_ratio"], 0.0001)
}

func TestProfileCompleteness(t *testing.T) {
	n := NewNormalizerAt(testNow)

	m := n.Normalize(&profile.Record{Username: "u"})
	assert.Equal(t, 0.0, m["profile_completeness"])

	m = n.Normalize(&profile.Record{
		Username:      "u",
		Bio:           "hello",
		Location:      "Seattle",
		ProfilePicURL: "https://img.example.com/u.jpg",
		Name:          "User",
		DisplayName:   "User D",
	})
	assert.Equal(t, 1.0, m["profile_completeness"])
}

func TestTwitterExtras(t *testing.T) {
	n := NewNormalizerAt(testNow)
	m := n.Normalize(&profile.Record{
		Username:      "u",
		Platform:      "twitter",
		ProfilePicURL: "https://abs.twimg.com/sticky/default_profile_images/default_profile.png",
		IsBlue:        true,
		Posts: []profile.Post{
			{Text: "a", IsRetweet: true, Source: "Twitter for iPhone"},
			{Text: "b", Source: "Twitter Web App"},
			{Text: "c", Source: "Twitter for iPhone"},
			{Text: "d"},
		},
	})

	assert.Equal(t, 0.25, m["retweet_ratio"])
	assert.Equal(t, 1.0, m["has_default_profile_image"])
	assert.Equal(t, float64(2), m["source_count"])
	assert.Equal(t, 1.0, m["is_twitter_blue"])
}

func TestInstagramExtras(t *testing.T) {
	n := NewNormalizerAt(testNow)
	m := n.Normalize(&profile.Record{
		Username:          "u",
		Platform:          "instagram",
		FollowersCount:    200,
		IsBusinessAccount: true,
		HasHighlights:     true,
		Posts:             []profile.Post{{Caption: "a"}, {Caption: "b"}},
	})

	assert.Equal(t, 1.0, m["is_business_account"])
	assert.Equal(t, 1.0, m["has_highlights"])
	assert.Equal(t, 0.0, m["has_igtv"])
	assert.Equal(t, 0.01, m["post_to_follower_ratio"])
}

func TestFacebookExtras(t *testing.T) {
	n := NewNormalizerAt(testNow)
	m := n.Normalize(&profile.Record{
		Username:       "u",
		Platform:       "facebook",
		PageLikesCount: 42,
		Work:           "Acme Corp",
		Location:       "Austin, TX",
	})

	assert.Equal(t, float64(42), m["page_likes_count"])
	assert.Equal(t, 0.5, m["profile_details_completeness"])
	assert.Equal(t, 0.0, m["has_profile_details"])
}

func TestEnsureDefaultsFillsCanonicalKeys(t *testing.T) {
	m := FeatureMap{}
	m.EnsureDefaults()

	assert.Len(t, m, len(CanonicalOrder))
	assert.Equal(t, float64(365), m[AccountAgeDays])
	assert.Equal(t, 1.0, m[FollowersFollowingRatio])
	assert.Equal(t, 1.0, m[ContentDiversity])
	assert.Equal(t, 0.05, m[EngagementRate])
}

func TestEnsureDefaultsKeepsExistingValues(t *testing.T) {
	m := FeatureMap{AccountAgeDays: 5}
	m.EnsureDefaults()
	assert.Equal(t, float64(5), m[AccountAgeDays])
}

func TestMergeLastWriterWins(t *testing.T) {
	m := FeatureMap{"a": 1}
	m.Merge(FeatureMap{"a": 2, "b": 3})
	assert.Equal(t, FeatureMap{"a": 2, "b": 3}, m)
}
