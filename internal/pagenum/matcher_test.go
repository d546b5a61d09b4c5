package pagenum

import (
	"math"
	"testing"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackEmptyCandidates(t *testing.T) {
	region := geometry.NewRectangle(0, 900, 1000, 100)
	assert.Nil(t, FindPageNumberWithFallback(nil, 42, region))
	assert.Nil(t, FindPageNumberWithFallback([]Candidate{}, 42, region))
}

func TestFallbackStage1ExactMatch(t *testing.T) {
	candidates := []Candidate{
		NewCandidate("42", geometry.NewRectangle(500, 950, 50, 30), 0.95),
		NewCandidate("41", geometry.NewRectangle(100, 950, 50, 30), 0.90),
	}
	region := geometry.NewRectangle(0, 900, 1000, 100)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, ExactMatch, m.Stage)
	assert.Equal(t, 42, m.ExpectedNumber)
	require.NotNil(t, m.Candidate.Number)
	assert.Equal(t, 42, *m.Candidate.Number)
	assert.InDelta(t, 1.0, m.Score, 0.0001)

	// Distance is the true Euclidean distance from the winning bbox
	// center (525, 965) to the region center (500, 950).
	want := math.Hypot(25, 15)
	assert.InDelta(t, want, m.Distance, 0.0001)
}

func TestFallbackStage1PrefersCloser(t *testing.T) {
	candidates := []Candidate{
		NewCandidate("42", geometry.NewRectangle(100, 950, 50, 30), 0.90),
		NewCandidate("42", geometry.NewRectangle(500, 950, 50, 30), 0.95),
	}
	region := geometry.NewRectangle(400, 900, 200, 100) // center (500, 950)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, ExactMatch, m.Stage)
	assert.Equal(t, geometry.NewRectangle(500, 950, 50, 30), m.Candidate.BBox)
	assert.Less(t, m.Distance, 100.0)
}

func TestFallbackStage2SimilarityMatch(t *testing.T) {
	// No exact match, but "124" is similar to "123".
	candidates := []Candidate{
		NewCandidate("124", geometry.NewRectangle(500, 950, 50, 30), 0.80),
		NewCandidate("abc", geometry.NewRectangle(100, 950, 50, 30), 0.90),
	}
	region := geometry.NewRectangle(400, 900, 200, 100)

	m := FindPageNumberWithFallback(candidates, 123, region)
	require.NotNil(t, m)
	assert.Equal(t, SimilarityMatch, m.Stage)
	assert.GreaterOrEqual(t, m.Score, MinSimilarityThreshold)
	assert.Equal(t, "124", m.Candidate.Text)
}

func TestFallbackStage2PrefersHigherSimilarity(t *testing.T) {
	candidates := []Candidate{
		NewCandidate("129", geometry.NewRectangle(480, 940, 40, 20), 0.80),
		NewCandidate("1234", geometry.NewRectangle(520, 960, 40, 20), 0.80),
	}
	region := geometry.NewRectangle(400, 900, 200, 100)

	m := FindPageNumberWithFallback(candidates, 123, region)
	require.NotNil(t, m)
	assert.Equal(t, SimilarityMatch, m.Stage)
	// "1234" shares the full "123" prefix and wins on similarity.
	assert.Equal(t, "1234", m.Candidate.Text)
}

func TestFallbackStage3OCRSuccess(t *testing.T) {
	// Text was read, but it is neither exact nor similar, and the region
	// is far away. The region constraint is dropped at stage 3.
	candidates := []Candidate{
		NewCandidate("xyz", geometry.NewRectangle(500, 950, 50, 30), 0.80),
	}
	region := geometry.NewRectangle(0, 0, 100, 100)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, OCRSuccessMatch, m.Stage)
	// Score is the candidate's confidence.
	assert.InDelta(t, 0.80, m.Score, 0.0001)
}

func TestFallbackStage4Fallback(t *testing.T) {
	candidates := []Candidate{
		NewCandidate("", geometry.NewRectangle(500, 950, 50, 30), 0.10),
	}
	region := geometry.NewRectangle(0, 0, 100, 100)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, FallbackMatch, m.Stage)
	assert.Zero(t, m.Score)
}

func TestFallbackStagePriority(t *testing.T) {
	// An exact match wins even when stage 3 would also match.
	candidates := []Candidate{
		NewCandidate("abc", geometry.NewRectangle(100, 950, 50, 30), 0.80),
		NewCandidate("42", geometry.NewRectangle(500, 950, 50, 30), 0.95),
	}
	region := geometry.NewRectangle(0, 900, 1000, 100)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, ExactMatch, m.Stage)
}

func TestFallbackRegionExpansion(t *testing.T) {
	// Candidate center just outside the strict region, but inside the 3%
	// expanded one.
	candidates := []Candidate{
		NewCandidate("42", geometry.NewRectangle(580, 985, 40, 30), 0.95),
	}
	region := geometry.NewRectangle(400, 900, 200, 100)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, ExactMatch, m.Stage)
}

func TestFallbackExactOutsideExpandedRegionFallsThrough(t *testing.T) {
	// The number matches but sits far outside the expanded region, so the
	// exact stage must not claim it. Since the text still reads as a
	// number, stage 3 picks it up instead.
	candidates := []Candidate{
		NewCandidate("42", geometry.NewRectangle(100, 100, 40, 30), 0.95),
	}
	region := geometry.NewRectangle(400, 900, 200, 100)

	m := FindPageNumberWithFallback(candidates, 42, region)
	require.NotNil(t, m)
	assert.Equal(t, OCRSuccessMatch, m.Stage)
}

func TestMatchQualityOrdering(t *testing.T) {
	c := NewCandidate("42", geometry.NewRectangle(100, 900, 50, 30), 0.95)
	exact := &Match{Candidate: c, Stage: ExactMatch, Score: 1.0, Distance: 10.0, ExpectedNumber: 42}
	sim := &Match{Candidate: c, Stage: SimilarityMatch, Score: 0.93, Distance: 10.0, ExpectedNumber: 42}
	ocr := &Match{Candidate: c, Stage: OCRSuccessMatch, Score: 0.95, Distance: 10.0, ExpectedNumber: 42}
	fb := &Match{Candidate: c, Stage: FallbackMatch, Score: 0.0, Distance: 10.0, ExpectedNumber: 42}

	assert.Greater(t, exact.Quality(), sim.Quality())
	assert.Greater(t, sim.Quality(), ocr.Quality())
	assert.Greater(t, ocr.Quality(), fb.Quality())
	assert.True(t, exact.IsExact())
	assert.False(t, fb.IsExact())
}

func TestMatchStageStrings(t *testing.T) {
	assert.Equal(t, "exact", ExactMatch.String())
	assert.Equal(t, "similarity", SimilarityMatch.String())
	assert.Equal(t, "ocr-success", OCRSuccessMatch.String())
	assert.Equal(t, "fallback", FallbackMatch.String())
	assert.NotEmpty(t, ExactMatch.Description())
}
