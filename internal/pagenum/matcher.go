package pagenum

import (
	"strconv"
	"strings"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/xrash/smetrics"
)

const (
	// MinSimilarityThreshold is the minimum Jaro-Winkler similarity for a
	// similarity-stage match.
	MinSimilarityThreshold = 0.7
	// SearchRegionMarginPercent is the fixed margin by which the search
	// region is expanded before the in-region stages.
	SearchRegionMarginPercent = 3.0

	// Jaro-Winkler parameters matching the conventional defaults.
	jaroWinklerBoostThreshold = 0.7
	jaroWinklerPrefixSize     = 4
)

// matchContext carries the per-page inputs shared by all cascade stages.
type matchContext struct {
	candidates []Candidate
	expected   int
	// expectedText is the decimal rendering of expected, for fuzzy matching.
	expectedText string
	// region is the search region expanded by the fixed margin.
	region geometry.Rectangle
	// ref is the unexpanded region's center, the distance reference.
	ref geometry.Point
}

// stageFunc is one strategy of the cascade. It returns nil when the
// strategy yields no match, letting the driver fall through.
type stageFunc func(matchContext) *Match

// matchStages is the cascade in preference order. The first stage that
// yields any match wins; later stages are not attempted.
var matchStages = []stageFunc{
	stageExact,
	stageSimilarity,
	stageOCRSuccess,
	stageFallback,
}

// FindPageNumberWithFallback returns the best match for the expected
// logical page number among one page's candidates, preferring verified
// numeric identity, then fuzzy textual identity, then any OCR text near
// the region, then the nearest candidate of any kind. Returns nil only
// for an empty candidate list.
func FindPageNumberWithFallback(candidates []Candidate, expectedNumber int, searchRegion geometry.Rectangle) *Match {
	if len(candidates) == 0 {
		return nil
	}

	mc := matchContext{
		candidates:   candidates,
		expected:     expectedNumber,
		expectedText: strconv.Itoa(expectedNumber),
		region:       searchRegion.Expand(SearchRegionMarginPercent),
		ref:          searchRegion.Center(),
	}

	for _, stage := range matchStages {
		if m := stage(mc); m != nil {
			return m
		}
	}
	return nil
}

// stageExact picks the candidate whose parsed number equals the expected
// number and whose bbox center lies in the expanded region, minimizing
// distance to the reference point.
func stageExact(mc matchContext) *Match {
	var best *Candidate
	bestDist := 0.0

	for i := range mc.candidates {
		c := &mc.candidates[i]
		if c.Number == nil || *c.Number != mc.expected {
			continue
		}
		if !mc.region.Contains(c.BBox.Center()) {
			continue
		}
		d := c.DistanceTo(mc.ref)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}

	if best == nil {
		return nil
	}
	return &Match{
		Candidate:      *best,
		Stage:          ExactMatch,
		Score:          1.0,
		Distance:       bestDist,
		ExpectedNumber: mc.expected,
	}
}

// stageSimilarity picks the in-region candidate whose trimmed text is most
// similar to the expected number's decimal text, requiring similarity of
// at least MinSimilarityThreshold. Ties on similarity break by distance.
func stageSimilarity(mc matchContext) *Match {
	var best *Candidate
	bestSim := 0.0
	bestDist := 0.0

	for i := range mc.candidates {
		c := &mc.candidates[i]
		text := strings.TrimSpace(c.Text)
		if text == "" || !mc.region.Contains(c.BBox.Center()) {
			continue
		}
		sim := smetrics.JaroWinkler(mc.expectedText, text, jaroWinklerBoostThreshold, jaroWinklerPrefixSize)
		if sim < MinSimilarityThreshold {
			continue
		}
		d := c.DistanceTo(mc.ref)
		if best == nil || sim > bestSim || (sim == bestSim && d < bestDist) {
			best = c
			bestSim = sim
			bestDist = d
		}
	}

	if best == nil {
		return nil
	}
	return &Match{
		Candidate:      *best,
		Stage:          SimilarityMatch,
		Score:          bestSim,
		Distance:       bestDist,
		ExpectedNumber: mc.expected,
	}
}

// stageOCRSuccess drops the region constraint and picks the nearest
// candidate for which OCR read any text at all.
func stageOCRSuccess(mc matchContext) *Match {
	var best *Candidate
	bestDist := 0.0

	for i := range mc.candidates {
		c := &mc.candidates[i]
		if !c.OCRSuccess {
			continue
		}
		d := c.DistanceTo(mc.ref)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}

	if best == nil {
		return nil
	}
	return &Match{
		Candidate:      *best,
		Stage:          OCRSuccessMatch,
		Score:          best.Confidence,
		Distance:       bestDist,
		ExpectedNumber: mc.expected,
	}
}

// stageFallback picks the nearest candidate regardless of OCR outcome, so
// every non-empty page yields a best-effort answer.
func stageFallback(mc matchContext) *Match {
	var best *Candidate
	bestDist := 0.0

	for i := range mc.candidates {
		c := &mc.candidates[i]
		d := c.DistanceTo(mc.ref)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}

	if best == nil {
		return nil
	}
	return &Match{
		Candidate:      *best,
		Stage:          FallbackMatch,
		Score:          0.0,
		Distance:       bestDist,
		ExpectedNumber: mc.expected,
	}
}
