package image

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInspector struct {
	signals Signals
	err     error
	calls   int
}

func (s *stubInspector) Inspect(url string) (Signals, error) {
	s.calls++
	return s.signals, s.err
}

func TestEmptyURLYieldsNeutral(t *testing.T) {
	a := NewAnalyzer(DefaultConfig(), &stubInspector{})

	res, err := a.Analyze("")
	require.NoError(t, err)
	assert.False(t, res.Performed)
	assert.Equal(t, 0.5, res.ProfilePicScore)
	assert.Equal(t, 0.5, res.ImageQualityScore)
}

func TestDefaultImageSkipsInspector(t *testing.T) {
	stub := &stubInspector{}
	a := NewAnalyzer(DefaultConfig(), stub)

	res, err := a.Analyze("https://abs.twimg.com/sticky/default_profile_images/default_profile_normal.png")
	require.NoError(t, err)

	assert.True(t, res.Performed)
	assert.True(t, res.IsDefaultImage)
	assert.Equal(t, 0, stub.calls)
	// base 0.3 plus default bonus 0.2 plus (1-0.5)*0.2 quality span.
	assert.InDelta(t, 0.6, res.ProfilePicScore, 0.0001)
}

func TestDefaultImagePatternVariants(t *testing.T) {
	a := NewAnalyzer(DefaultConfig(), &stubInspector{})

	for _, url := range []string{
		"https://cdn.example.com/avatars/placeholder.png",
		"https://cdn.example.com/no-photo.jpg",
		"https://cdn.example.com/Default_Avatar.png",
		"https://cdn.example.com/anonymous.jpg",
	} {
		res, err := a.Analyze(url)
		require.NoError(t, err)
		assert.True(t, res.IsDefaultImage, "url=%s", url)
	}

	res, err := a.Analyze("https://cdn.example.com/u/alice.jpg")
	require.NoError(t, err)
	assert.False(t, res.IsDefaultImage)
}

func TestInspectorErrorYieldsNeutralAndError(t *testing.T) {
	cause := errors.New("backend unreachable")
	stub := &stubInspector{err: cause}
	a := NewAnalyzer(DefaultConfig(), stub)

	res, err := a.Analyze("https://cdn.example.com/u/alice.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	// Scoring degrades to neutral, but the failure is not swallowed: the
	// error is what separates "backend down" from "no picture at all".
	assert.False(t, res.Performed)
	assert.Equal(t, 0.5, res.ProfilePicScore)
	assert.Equal(t, 0.5, res.ImageQualityScore)
}

func TestStockAndAISignalsRaiseScore(t *testing.T) {
	stub := &stubInspector{signals: Signals{Hash: "abc", IsStockPhoto: true, QualityScore: 0.5}}
	a := NewAnalyzer(DefaultConfig(), stub)

	res, err := a.Analyze("https://cdn.example.com/u/alice.jpg")
	require.NoError(t, err)
	assert.True(t, res.IsStockPhoto)
	// base 0.3 + stock 0.3 + (1-0.5)*0.2.
	assert.InDelta(t, 0.7, res.ProfilePicScore, 0.0001)

	stub.signals = Signals{IsStockPhoto: true, IsAIGenerated: true, QualityScore: 0.0}
	res, err = a.Analyze("https://cdn.example.com/u/bob.jpg")
	require.NoError(t, err)
	// 0.3 + 0.3 + 0.4 + 0.2 caps at 1.
	assert.Equal(t, 1.0, res.ProfilePicScore)
}

func TestHighQualityGenuinePhotoScoresLow(t *testing.T) {
	stub := &stubInspector{signals: Signals{QualityScore: 1.0}}
	a := NewAnalyzer(DefaultConfig(), stub)

	res, err := a.Analyze("https://cdn.example.com/u/alice.jpg")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, res.ProfilePicScore, 0.0001)
	assert.Equal(t, 1.0, res.ImageQualityScore)
}

func TestSimulatedInspectorIsDeterministic(t *testing.T) {
	ins := NewSimulatedInspector()

	first, err := ins.Inspect("https://cdn.example.com/u/alice.jpg")
	assert.NoError(t, err)
	second, err := ins.Inspect("https://cdn.example.com/u/alice.jpg")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first.Hash, 20)
	assert.GreaterOrEqual(t, first.QualityScore, 0.3)
	assert.LessOrEqual(t, first.QualityScore, 1.0)
}
