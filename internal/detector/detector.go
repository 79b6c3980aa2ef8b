// Package detector wires the normalizer, the analyzers and the classifier
// into a single Analyze call.
package detector

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/strrl/fakeprofile/internal/activity"
	"github.com/strrl/fakeprofile/internal/classifier"
	"github.com/strrl/fakeprofile/internal/config"
	"github.com/strrl/fakeprofile/internal/content"
	"github.com/strrl/fakeprofile/internal/features"
	"github.com/strrl/fakeprofile/internal/image"
	"github.com/strrl/fakeprofile/internal/indicators"
	"github.com/strrl/fakeprofile/internal/network"
	"github.com/strrl/fakeprofile/internal/profile"
)

// Result is the full outcome of analyzing one profile.
type Result struct {
	IsFake            bool                   `json:"is_fake"`
	Probability       float64                `json:"probability"`
	Indicators        []indicators.Indicator `json:"indicators"`
	FeatureImportance map[string]float64     `json:"feature_importance"`
	Recommendations   []string               `json:"recommendations"`
	Features          features.FeatureMap    `json:"features"`
	Profile           *profile.Record        `json:"profile,omitempty"`
	Timestamp         time.Time              `json:"timestamp"`
}

type Detector struct {
	log        *logrus.Logger
	normalizer *features.Normalizer
	content    *content.Analyzer
	activity   *activity.Analyzer
	image      *image.Analyzer
	network    *network.Analyzer
	decider    classifier.Decider
}

// New builds a Detector from cfg. A missing model file is not an error: the
// detector logs it and falls back to the red-flag heuristic.
func New(cfg config.Config, log *logrus.Logger) (*Detector, error) {
	d := &Detector{
		log:        log,
		normalizer: features.NewNormalizer(),
		content:    content.NewAnalyzer(cfg.Content),
		activity:   activity.NewAnalyzer(cfg.Activity),
		image:      image.NewAnalyzer(cfg.Image, image.NewSimulatedInspector()),
		network:    network.NewAnalyzer(),
	}

	if cfg.ModelPath != "" {
		model, err := classifier.LoadModel(cfg.ModelPath)
		switch {
		case err == nil:
			d.decider = classifier.NewTrained(model)
			log.WithField("model_path", cfg.ModelPath).Info("loaded trained model")
		case errors.Is(err, classifier.ErrModelNotFound):
			log.WithField("model_path", cfg.ModelPath).Warn("model not found, using heuristic decision")
		default:
			return nil, fmt.Errorf("load model: %w", err)
		}
	}
	if d.decider == nil {
		d.decider = classifier.NewHeuristic()
	}
	return d, nil
}

// Analyze runs the full pipeline on rec. Analyzer panics degrade that
// analyzer to its neutral result instead of failing the run; only the
// decider can return an error.
func (d *Detector) Analyze(rec *profile.Record) (*Result, error) {
	m := d.normalizer.Normalize(rec)

	m.Merge(d.contentFeatures(rec))
	m.Merge(d.activityFeatures(rec, m.Value(features.AccountAgeDays, 365)))
	m.Merge(d.imageFeatures(rec))
	m.Merge(d.networkFeatures(rec))
	m.EnsureDefaults()

	decision, err := d.decider.Decide(m)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", rec.Username, err)
	}

	inds := indicators.FromFeatures(m)
	res := &Result{
		IsFake:            decision.IsFake,
		Probability:       decision.Probability,
		Indicators:        inds,
		FeatureImportance: decision.Importance,
		Recommendations:   indicators.Recommendations(decision.IsFake, decision.Probability, inds),
		Features:          m,
		Profile:           rec,
		Timestamp:         time.Now().UTC(),
	}

	d.log.WithFields(logrus.Fields{
		"username":    rec.Username,
		"platform":    rec.Platform,
		"is_fake":     res.IsFake,
		"probability": res.Probability,
		"indicators":  len(res.Indicators),
	}).Info("profile analyzed")
	return res, nil
}

func (d *Detector) contentFeatures(rec *profile.Record) (fm features.FeatureMap) {
	defer d.recoverAnalyzer("content", rec.Username, &fm, content.Neutral().Features())
	return d.content.Analyze(rec.Posts).Features()
}

func (d *Detector) activityFeatures(rec *profile.Record, accountAgeDays float64) (fm features.FeatureMap) {
	defer d.recoverAnalyzer("activity", rec.Username, &fm, activity.Neutral().Features())
	return d.activity.Analyze(rec.Posts, accountAgeDays).Features()
}

func (d *Detector) imageFeatures(rec *profile.Record) (fm features.FeatureMap) {
	defer d.recoverAnalyzer("image", rec.Username, &fm, image.Neutral().Features())
	res, err := d.image.Analyze(rec.ProfilePicURL)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"analyzer": "image",
			"username": rec.Username,
		}).WithError(err).Warn("image inspection failed, using neutral result")
	}
	return res.Features()
}

func (d *Detector) networkFeatures(rec *profile.Record) (fm features.FeatureMap) {
	defer d.recoverAnalyzer("network", rec.Username, &fm, features.FeatureMap{})
	followers := rec.FollowersCount
	if followers == 0 && rec.FriendCount > 0 {
		followers = rec.FriendCount
	}
	return d.network.Analyze(rec.Followers, rec.Following, rec.Interactions, followers, rec.FollowingCount).Features()
}

// recoverAnalyzer swallows a panic from one analyzer and substitutes its
// neutral feature set, so a single bad input cannot sink the whole run.
func (d *Detector) recoverAnalyzer(name, username string, out *features.FeatureMap, neutral features.FeatureMap) {
	if r := recover(); r != nil {
		d.log.WithFields(logrus.Fields{
			"analyzer": name,
			"username": username,
			"panic":    r,
		}).Warn("analyzer panicked, using neutral result")
		*out = neutral
	}
}
