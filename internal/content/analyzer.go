// Package content scores textual posts for sentiment, lexical diversity and
// spam density. The analyzer is a total function: sparse or absent input
// yields neutral defaults, never an error.
package content

import (
	"regexp"
	"strings"

	"github.com/strrl/fakeprofile/internal/features"
	"github.com/strrl/fakeprofile/internal/profile"
)

// Config holds the weights combining the partial signals into the overall
// suspicious-content score. The defaults are tuned constants; change them
// deliberately, not on instinct.
type Config struct {
	SentimentWeight float64 `yaml:"sentiment_weight"`
	DiversityWeight float64 `yaml:"diversity_weight"`
	SpamWeight      float64 `yaml:"spam_weight"`
	KeywordWeight   float64 `yaml:"keyword_weight"`
}

func DefaultConfig() Config {
	return Config{
		SentimentWeight: 0.1,
		DiversityWeight: 0.35,
		SpamWeight:      0.35,
		KeywordWeight:   0.2,
	}
}

// Result carries the content signals plus the Performed flag that records
// whether there was any text to analyze.
type Result struct {
	Performed              bool
	SentimentScore         float64
	ContentDiversity       float64
	SuspiciousContentScore float64
	SpamPatternMatches     int
	SuspiciousKeywordCount int
	KeywordRatio           float64
}

// Neutral is the documented default for profiles with no textual posts.
func Neutral() Result {
	return Result{
		Performed:        false,
		SentimentScore:   0.5,
		ContentDiversity: 1.0,
	}
}

// Features folds the result into the shared feature mapping.
func (r Result) Features() features.FeatureMap {
	m := features.FeatureMap{
		"content_analysis_performed": 0,
		features.SentimentScore:      r.SentimentScore,
		features.ContentDiversity:    r.ContentDiversity,
		"suspicious_content_score":   r.SuspiciousContentScore,
		"spam_pattern_matches":       float64(r.SpamPatternMatches),
		"suspicious_keywords_count":  float64(r.SuspiciousKeywordCount),
		"keyword_ratio":              r.KeywordRatio,
	}
	if r.Performed {
		m["content_analysis_performed"] = 1
	}
	return m
}

type Analyzer struct {
	cfg      Config
	patterns []*regexp.Regexp
}

func NewAnalyzer(cfg Config) *Analyzer {
	patterns := make([]*regexp.Regexp, 0, len(spamPatternSources))
	for _, src := range spamPatternSources {
		patterns = append(patterns, regexp.MustCompile(src))
	}
	return &Analyzer{cfg: cfg, patterns: patterns}
}

// Analyze scores the textual content of the given posts.
func (a *Analyzer) Analyze(posts []profile.Post) Result {
	var texts []string
	for i := range posts {
		if body := strings.TrimSpace(posts[i].Body()); body != "" {
			texts = append(texts, body)
		}
	}
	if len(texts) == 0 {
		return Neutral()
	}

	sentiment := analyzeSentiment(texts)
	diversity := contentDiversity(texts)
	spamMatches := a.countSpamMatches(texts)
	keywordCount := countSuspiciousKeywords(texts)

	totalTokens := 0
	for _, text := range texts {
		totalTokens += len(tokenize(text))
	}
	keywordRatio := 0.0
	if totalTokens > 0 {
		keywordRatio = float64(keywordCount) / float64(totalTokens)
	}

	return Result{
		Performed:              true,
		SentimentScore:         sentiment,
		ContentDiversity:       diversity,
		SuspiciousContentScore: a.suspiciousScore(sentiment, diversity, spamMatches, keywordRatio, len(texts)),
		SpamPatternMatches:     spamMatches,
		SuspiciousKeywordCount: keywordCount,
		KeywordRatio:           keywordRatio,
	}
}

// analyzeSentiment does a word-list lookup. 0.5 is neutral; the score shifts
// toward 0 or 1 with the balance of negative and positive hits.
func analyzeSentiment(texts []string) float64 {
	positive, negative := 0, 0
	for _, text := range texts {
		for _, word := range tokenize(strings.ToLower(text)) {
			if _, ok := positiveWords[word]; ok {
				positive++
			}
			if _, ok := negativeWords[word]; ok {
				negative++
			}
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.5
	}
	score := 0.5 + float64(positive-negative)/float64(2*total)
	return clamp01(score)
}

// contentDiversity is a type-token ratio, deflated for small corpora where
// raw TTR runs high.
func contentDiversity(texts []string) float64 {
	seen := make(map[string]struct{})
	total := 0
	for _, text := range texts {
		for _, token := range tokenize(strings.ToLower(text)) {
			seen[token] = struct{}{}
			total++
		}
	}
	if total == 0 {
		return 1.0
	}

	ttr := float64(len(seen)) / float64(total)
	return ttr * (1 - 0.5/float64(1+len(texts)))
}

// countSpamMatches counts pattern hits per post, not deduplicated across
// posts: the same phrase repeated in five posts is five matches.
func (a *Analyzer) countSpamMatches(texts []string) int {
	matches := 0
	for _, text := range texts {
		for _, pattern := range a.patterns {
			if pattern.MatchString(text) {
				matches++
			}
		}
	}
	return matches
}

func countSuspiciousKeywords(texts []string) int {
	count := 0
	for _, text := range texts {
		unique := make(map[string]struct{})
		for _, token := range tokenize(strings.ToLower(text)) {
			unique[token] = struct{}{}
		}
		for token := range unique {
			if _, ok := suspiciousKeywords[token]; ok {
				count++
			}
		}
	}
	return count
}

func (a *Analyzer) suspiciousScore(sentiment, diversity float64, spamMatches int, keywordRatio float64, postCount int) float64 {
	sentimentExtremity := 2 * abs(sentiment-0.5)
	diversityFactor := 1 - diversity

	spamFactor := 0.0
	if postCount > 0 {
		spamFactor = min1(float64(spamMatches) / float64(postCount))
	}

	score := a.cfg.SentimentWeight*sentimentExtremity +
		a.cfg.DiversityWeight*diversityFactor +
		a.cfg.SpamWeight*spamFactor +
		a.cfg.KeywordWeight*min1(keywordRatio*10)

	return clamp01(score)
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// tokenize strips ASCII punctuation and splits on whitespace.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
	return strings.Fields(cleaned)
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

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
