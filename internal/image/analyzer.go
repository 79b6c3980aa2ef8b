// Package image scores a profile picture for default/stock/generated-image
// suspicion. URL pattern matching is done locally; stock, AI and quality
// signals come from a pluggable Inspector capability.
package image

import (
	"fmt"
	"regexp"

	"github.com/strrl/fakeprofile/internal/features"
)

// Signals are the three outputs the analyzer needs from image inspection.
type Signals struct {
	Hash          string
	IsStockPhoto  bool
	IsAIGenerated bool
	QualityScore  float64
}

// Inspector is the image-inspection capability boundary: hash lookup against
// a known-fake set, generative-image classification and quality estimation.
// Implementations must be safe for concurrent use.
type Inspector interface {
	Inspect(url string) (Signals, error)
}

// Config carries the fixed increments of the composite picture score.
type Config struct {
	BaseScore    float64 `yaml:"base_score"`
	DefaultBonus float64 `yaml:"default_bonus"`
	StockBonus   float64 `yaml:"stock_bonus"`
	AIBonus      float64 `yaml:"ai_bonus"`
	QualitySpan  float64 `yaml:"quality_span"`
}

func DefaultConfig() Config {
	return Config{
		BaseScore:    0.3,
		DefaultBonus: 0.2,
		StockBonus:   0.3,
		AIBonus:      0.4,
		QualitySpan:  0.2,
	}
}

type Result struct {
	Performed         bool
	ProfilePicScore   float64
	IsDefaultImage    bool
	IsStockPhoto      bool
	IsAIGenerated     bool
	ImageQualityScore float64
	Hash              string
}

// Neutral is the documented default when no picture URL is supplied or
// inspection fails.
func Neutral() Result {
	return Result{
		Performed:         false,
		ProfilePicScore:   0.5,
		ImageQualityScore: 0.5,
	}
}

func (r Result) Features() features.FeatureMap {
	m := features.FeatureMap{
		"image_analysis_performed": 0,
		features.ProfilePicScore:   r.ProfilePicScore,
		"is_default_image":         0,
		"is_stock_photo":           0,
		"is_ai_generated":          0,
		"image_quality_score":      r.ImageQualityScore,
	}
	if r.Performed {
		m["image_analysis_performed"] = 1
	}
	if r.IsDefaultImage {
		m["is_default_image"] = 1
	}
	if r.IsStockPhoto {
		m["is_stock_photo"] = 1
	}
	if r.IsAIGenerated {
		m["is_ai_generated"] = 1
	}
	return m
}

// defaultImageSources match placeholder and default-avatar naming
// conventions across platforms.
var defaultImageSources = []string{
	`(?i)default[_-]?profile`,
	`(?i)default[_-]?avatar`,
	`(?i)profile[_-]?default`,
	`(?i)avatar[_-]?default`,
	`(?i)placeholder`,
	`(?i)no[_-]?profile`,
	`(?i)no[_-]?photo`,
	`(?i)anonymous`,
	`(?i)default[_-]?user`,
	`(?i)blank[_-]?profile`,
}

type Analyzer struct {
	cfg             Config
	inspector       Inspector
	defaultPatterns []*regexp.Regexp
}

func NewAnalyzer(cfg Config, inspector Inspector) *Analyzer {
	patterns := make([]*regexp.Regexp, 0, len(defaultImageSources))
	for _, src := range defaultImageSources {
		patterns = append(patterns, regexp.MustCompile(src))
	}
	return &Analyzer{cfg: cfg, inspector: inspector, defaultPatterns: patterns}
}

// Analyze scores the profile picture behind the given URL. An inspection
// failure yields the neutral result together with the error, so callers can
// tell a backend outage apart from a profile that simply has no picture.
func (a *Analyzer) Analyze(url string) (Result, error) {
	if url == "" {
		return Neutral(), nil
	}

	isDefault := a.isDefaultImage(url)

	signals := Signals{QualityScore: 0.5}
	if !isDefault && a.inspector != nil {
		var err error
		signals, err = a.inspector.Inspect(url)
		if err != nil {
			return Neutral(), fmt.Errorf("inspect %s: %w", url, err)
		}
	}

	return Result{
		Performed:         true,
		ProfilePicScore:   a.picScore(isDefault, signals),
		IsDefaultImage:    isDefault,
		IsStockPhoto:      signals.IsStockPhoto,
		IsAIGenerated:     signals.IsAIGenerated,
		ImageQualityScore: signals.QualityScore,
		Hash:              signals.Hash,
	}, nil
}

func (a *Analyzer) isDefaultImage(url string) bool {
	for _, pattern := range a.defaultPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

func (a *Analyzer) picScore(isDefault bool, signals Signals) float64 {
	score := a.cfg.BaseScore
	if isDefault {
		score += a.cfg.DefaultBonus
	}
	if signals.IsStockPhoto {
		score += a.cfg.StockBonus
	}
	if signals.IsAIGenerated {
		score += a.cfg.AIBonus
	}
	score += (1 - signals.QualityScore) * a.cfg.QualitySpan

	if score > 1 {
		return 1
	}
	return score
}
