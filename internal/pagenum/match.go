package pagenum

import "encoding/json"

// MatchStage identifies which strategy of the fallback cascade produced a
// match. Earlier stages are more trustworthy.
type MatchStage int

const (
	// ExactMatch is an exact numeric match inside the search region.
	ExactMatch MatchStage = iota + 1
	// SimilarityMatch is a fuzzy text match (Jaro-Winkler) inside the region.
	SimilarityMatch
	// OCRSuccessMatch is the nearest candidate with any OCR text, region
	// constraint dropped.
	OCRSuccessMatch
	// FallbackMatch is the nearest candidate of any kind.
	FallbackMatch
)

// String returns the stage name.
func (s MatchStage) String() string {
	switch s {
	case ExactMatch:
		return "exact"
	case SimilarityMatch:
		return "similarity"
	case OCRSuccessMatch:
		return "ocr-success"
	case FallbackMatch:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the stage name rather than its numeric value.
func (s MatchStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Description returns a one-line explanation of the stage's strategy.
func (s MatchStage) Description() string {
	switch s {
	case ExactMatch:
		return "exact number match within region, minimum distance"
	case SimilarityMatch:
		return "maximum Jaro-Winkler similarity within region"
	case OCRSuccessMatch:
		return "any OCR text, minimum distance"
	case FallbackMatch:
		return "any candidate, minimum distance"
	default:
		return "unknown stage"
	}
}

// Match is the matcher's chosen candidate for one page.
type Match struct {
	// Candidate is the winning candidate.
	Candidate Candidate `json:"candidate"`
	// Stage is the cascade stage that produced the match.
	Stage MatchStage `json:"stage"`
	// Score is stage-dependent: 1.0 for exact, the similarity for
	// similarity matches, the candidate confidence for OCR-success, and
	// 0.0 for fallback.
	Score float64 `json:"score"`
	// Distance is the Euclidean distance from the candidate's bbox center
	// to the search region center.
	Distance float64 `json:"distance"`
	// ExpectedNumber is the logical page number that was searched for.
	ExpectedNumber int `json:"expected_number"`
}

// IsExact reports whether the match came from the exact stage.
func (m *Match) IsExact() bool {
	return m.Stage == ExactMatch
}

// Quality collapses stage, score, and distance into a single comparable
// scalar, monotonically higher for earlier stages.
func (m *Match) Quality() float64 {
	switch m.Stage {
	case ExactMatch:
		return 1.0 + m.Score
	case SimilarityMatch:
		return 0.75 + m.Score*0.25
	case OCRSuccessMatch:
		return 0.5 + max(0, 1.0-m.Distance/1000.0)*0.25
	case FallbackMatch:
		return 0.25 + max(0, 1.0-m.Distance/1000.0)*0.25
	default:
		return 0
	}
}
