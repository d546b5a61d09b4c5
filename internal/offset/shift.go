package offset

import "github.com/MeKo-Tech/folio/internal/pagenum"

// ShiftResult is the outcome of the brute-force shift search.
type ShiftResult struct {
	// Shift is physical page minus logical page.
	Shift int
	// MatchCount is the number of detections explained by Shift.
	MatchCount int
	// Confidence is the best accumulated score normalized against the
	// theoretical maximum (every detection matching at confidence 100).
	Confidence float64
}

// detectionMatchesShift reports whether a detection's number equals its
// physical page minus the shift, for logical pages of at least 1.
func detectionMatchesShift(d pagenum.Detection, shift int) bool {
	expected := d.PhysicalPage() - shift
	return expected >= 1 && d.Number != nil && *d.Number == expected
}

// FindBestShift searches integer shifts in [-MaxShiftTest, MaxShiftTest)
// for the physical-to-logical offset that best explains the detections,
// scoring each candidate shift by the summed confidence of the detections
// it matches. Ties break toward the smaller absolute shift, so "no shift"
// beats an equally good larger one.
func FindBestShift(detections []pagenum.Detection, params Params) ShiftResult {
	best := ShiftResult{}
	bestScore := 0.0

	for shift := -params.MaxShiftTest; shift < params.MaxShiftTest; shift++ {
		score := 0.0
		count := 0
		for _, d := range detections {
			if detectionMatchesShift(d, shift) {
				score += d.Confidence
				count++
			}
		}
		if score > bestScore || (score == bestScore && absInt(shift) < absInt(best.Shift)) {
			bestScore = score
			best.Shift = shift
			best.MatchCount = count
		}
	}

	maxPossible := float64(len(detections)) * 100.0
	if maxPossible > 0 {
		best.Confidence = bestScore / maxPossible
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
