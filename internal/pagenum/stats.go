package pagenum

// FallbackMatchStats tallies how many matches of a batch landed in each
// cascade stage and how many pages produced no match at all.
type FallbackMatchStats struct {
	Total            int `json:"total"`
	Stage1Exact      int `json:"stage1_exact"`
	Stage2Similarity int `json:"stage2_similarity"`
	Stage3OCRSuccess int `json:"stage3_ocr_success"`
	Stage4Fallback   int `json:"stage4_fallback"`
	NotFound         int `json:"not_found"`
}

// StatsFromMatches builds stage-distribution statistics from batch results.
func StatsFromMatches(matches []*Match) FallbackMatchStats {
	stats := FallbackMatchStats{Total: len(matches)}
	for _, m := range matches {
		if m == nil {
			stats.NotFound++
			continue
		}
		switch m.Stage {
		case ExactMatch:
			stats.Stage1Exact++
		case SimilarityMatch:
			stats.Stage2Similarity++
		case OCRSuccessMatch:
			stats.Stage3OCRSuccess++
		case FallbackMatch:
			stats.Stage4Fallback++
		}
	}
	return stats
}

// DetectionRate is the fraction of pages that produced any match.
func (s FallbackMatchStats) DetectionRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Total-s.NotFound) / float64(s.Total)
}

// HighConfidenceRate is the fraction of pages matched by the exact or
// similarity stages.
func (s FallbackMatchStats) HighConfidenceRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Stage1Exact+s.Stage2Similarity) / float64(s.Total)
}
