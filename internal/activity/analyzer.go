// Package activity scores temporal posting behavior: frequency, regularity,
// time-of-day concentration and burst detection.
package activity

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/strrl/fakeprofile/internal/features"
	"github.com/strrl/fakeprofile/internal/profile"
)

const (
	burstWindow      = 10 * time.Minute
	burstMinPosts    = 3
	minPostsForHours = 5
)

// Config carries the weights of the composite activity score. The six
// weights sum to 1.0 by default.
type Config struct {
	AgeWeight        float64 `yaml:"age_weight"`
	FrequencyWeight  float64 `yaml:"frequency_weight"`
	RegularityWeight float64 `yaml:"regularity_weight"`
	EngagementWeight float64 `yaml:"engagement_weight"`
	TimeZoneWeight   float64 `yaml:"time_zone_weight"`
	BurstWeight      float64 `yaml:"burst_weight"`
}

func DefaultConfig() Config {
	return Config{
		AgeWeight:        0.15,
		FrequencyWeight:  0.2,
		RegularityWeight: 0.15,
		EngagementWeight: 0.25,
		TimeZoneWeight:   0.1,
		BurstWeight:      0.15,
	}
}

type Result struct {
	Performed           bool
	PostsPerDay         float64
	PostingRegularity   float64
	TimeZoneConsistency float64
	PostingBursts       int
	EngagementRate      float64
	ActivityScore       float64
}

// Neutral is the documented default for profiles with no posts.
func Neutral() Result {
	return Result{
		Performed:           false,
		PostingRegularity:   0.5,
		TimeZoneConsistency: 0.5,
		ActivityScore:       0.5,
	}
}

func (r Result) Features() features.FeatureMap {
	m := features.FeatureMap{
		"activity_analysis_performed": 0,
		features.PostsPerDay:          r.PostsPerDay,
		features.PostingRegularity:    r.PostingRegularity,
		"time_zone_consistency":       r.TimeZoneConsistency,
		"posting_bursts":              float64(r.PostingBursts),
		features.EngagementRate:       r.EngagementRate,
		"activity_score":              r.ActivityScore,
	}
	if r.Performed {
		m["activity_analysis_performed"] = 1
	}
	return m
}

type Analyzer struct {
	cfg Config
}

func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze scores the posting behavior of the given posts. accountAgeDays
// comes from the normalizer so both stages agree on the account's age.
func (a *Analyzer) Analyze(posts []profile.Post, accountAgeDays float64) Result {
	if len(posts) == 0 {
		return Neutral()
	}

	if accountAgeDays < 1 {
		accountAgeDays = 1
	}
	postsPerDay := float64(len(posts)) / accountAgeDays

	var stamps []time.Time
	for i := range posts {
		if posts[i].Timestamp.Valid {
			stamps = append(stamps, posts[i].Timestamp.Time)
		}
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	regularity := 0.5
	consistency := 0.5
	bursts := 0
	if len(stamps) > 0 {
		regularity = postingRegularity(stamps)
		consistency = timeZoneConsistency(stamps)
		bursts = detectBursts(stamps)
	}

	engagement := engagementRate(posts)

	return Result{
		Performed:           true,
		PostsPerDay:         postsPerDay,
		PostingRegularity:   regularity,
		TimeZoneConsistency: consistency,
		PostingBursts:       bursts,
		EngagementRate:      engagement,
		ActivityScore:       a.activityScore(accountAgeDays, postsPerDay, regularity, engagement, consistency, bursts),
	}
}

// postingRegularity is the inverse coefficient of variation of inter-post
// gaps. A mean gap of zero scores maximal regularity, a strong automation
// signal.
func postingRegularity(sorted []time.Time) float64 {
	if len(sorted) < 2 {
		return 0.5
	}

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Sub(sorted[i-1]).Seconds())
	}

	mean := stat.Mean(gaps, nil)
	if mean == 0 {
		return 1.0
	}

	cv := stat.PopStdDev(gaps, nil) / mean
	return clamp01(1.0 - cv/2.0)
}

// timeZoneConsistency is the fraction of posts falling in the densest
// contiguous 8-hour-of-day window, circular over the 24 possible starts.
// Needs at least five timestamped posts to say anything.
func timeZoneConsistency(stamps []time.Time) float64 {
	if len(stamps) < minPostsForHours {
		return 0.5
	}

	var hourCounts [24]int
	for _, t := range stamps {
		hourCounts[t.Hour()]++
	}

	best := 0
	for start := 0; start < 24; start++ {
		window := 0
		for i := 0; i < 8; i++ {
			window += hourCounts[(start+i)%24]
		}
		if window > best {
			best = window
		}
	}

	return float64(best) / float64(len(stamps))
}

// detectBursts counts non-overlapping bursts: at least three posts inside a
// ten-minute window. After a burst the scan resumes past its last post.
func detectBursts(sorted []time.Time) int {
	if len(sorted) < burstMinPosts {
		return 0
	}

	bursts := 0
	i := 0
	for i < len(sorted) {
		windowEnd := sorted[i].Add(burstWindow)
		j := i
		for j < len(sorted) && !sorted[j].After(windowEnd) {
			j++
		}
		if j-i >= burstMinPosts {
			bursts++
			i = j
		} else {
			i++
		}
	}
	return bursts
}

// engagementRate maps the mean interactions per post through a logistic
// curve centered at 10, so "normal" engagement lands near 0.5.
func engagementRate(posts []profile.Post) float64 {
	total := 0
	for i := range posts {
		total += posts[i].EngagementTotal()
	}
	avg := float64(total) / float64(len(posts))
	return 1 / (1 + math.Exp(-0.1*(avg-10)))
}

func (a *Analyzer) activityScore(accountAgeDays, postsPerDay, regularity, engagement, consistency float64, bursts int) float64 {
	ageFactor := clamp01(1 - accountAgeDays/180)

	var frequencyFactor float64
	switch {
	case postsPerDay > 15:
		frequencyFactor = min1((postsPerDay - 15) / 10)
	case postsPerDay < 0.05:
		frequencyFactor = min1((0.05 - postsPerDay) / 0.05)
	}

	regularityFactor := 0.0
	if regularity > 0.8 {
		regularityFactor = regularity
	}

	engagementFactor := clamp01(1 - engagement*10)
	timeZoneFactor := clamp01(1 - consistency)
	burstFactor := min1(float64(bursts) / 5)

	score := a.cfg.AgeWeight*ageFactor +
		a.cfg.FrequencyWeight*frequencyFactor +
		a.cfg.RegularityWeight*regularityFactor +
		a.cfg.EngagementWeight*engagementFactor +
		a.cfg.TimeZoneWeight*timeZoneFactor +
		a.cfg.BurstWeight*burstFactor

	return clamp01(score)
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

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
