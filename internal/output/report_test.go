package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/fakeprofile/internal/detector"
	"github.com/strrl/fakeprofile/internal/indicators"
	"github.com/strrl/fakeprofile/internal/profile"
)

func sampleResult() *detector.Result {
	return &detector.Result{
		IsFake:      true,
		Probability: 0.85,
		Indicators: []indicators.Indicator{
			{Name: "New Account", Description: "Account was created recently", Severity: indicators.SeverityMedium},
			{Name: "Isolated Network", Description: "Account has minimal interaction with legitimate accounts", Severity: indicators.SeverityHigh},
		},
		FeatureImportance: map[string]float64{
			"new_account":      0.1,
			"isolated_network": 0.1,
			"no_bio":           0.0,
		},
		Recommendations: []string{
			"This profile shows several suspicious patterns. Exercise caution when interacting.",
		},
		Profile: &profile.Record{
			Username:       "promo_bot",
			Platform:       "twitter",
			URL:            "https://twitter.com/promo_bot",
			CreationDate:   "2024-05-20",
			FollowersCount: 3,
			FollowingCount: 2500,
		},
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(dir)

	path, err := gen.WriteReport(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "twitter-promo_bot.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(raw)

	assert.Contains(t, report, "# Profile Analysis: promo_bot (twitter)")
	assert.Contains(t, report, "LIKELY FAKE")
	assert.Contains(t, report, "85.0%")
	assert.Contains(t, report, "| New Account | medium |")
	assert.Contains(t, report, "| Isolated Network | high |")
	assert.Contains(t, report, "https://twitter.com/promo_bot")
	assert.Contains(t, report, "Exercise caution")
}

func TestWriteReportWithoutProfile(t *testing.T) {
	gen := NewGenerator(t.TempDir())

	res := sampleResult()
	res.Profile = nil
	res.Indicators = nil

	path, err := gen.WriteReport(res)
	require.NoError(t, err)
	assert.Contains(t, path, "unknown-unknown.md")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No suspicious indicators detected.")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "alice", sanitizeFilename("alice"))
	assert.Equal(t, "carol-smith", sanitizeFilename("carol.smith"))
	assert.Equal(t, "unnamed", sanitizeFilename("???"))
	assert.Equal(t, "promo_bot", sanitizeFilename("promo_bot"))
}

func TestGaugeBounds(t *testing.T) {
	assert.Equal(t, "`[----------]`", gauge(0))
	assert.Equal(t, "`[##########]`", gauge(1))
	assert.Equal(t, "`[#####-----]`", gauge(0.55))
}
