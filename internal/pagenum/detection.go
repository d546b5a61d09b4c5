package pagenum

import "github.com/MeKo-Tech/folio/internal/geometry"

// Detection is one page's resolved page number, the unit consumed by
// offset analysis.
type Detection struct {
	// PageIndex is the 0-indexed position of the page in the scanned file.
	PageIndex int `json:"page_index"`
	// Number is the detected logical page number, nil when nothing
	// usable was read (empty OCR, roman numerals, garbage).
	Number *int `json:"number,omitempty"`
	// Position is where the page number was detected, in page pixels.
	Position geometry.Rectangle `json:"position"`
	// Confidence is the detection confidence in [0, 100].
	Confidence float64 `json:"confidence"`
	// RawText is the OCR text the number was parsed from.
	RawText string `json:"raw_text"`
}

// PhysicalPage returns the 1-indexed physical page number.
func (d Detection) PhysicalPage() int {
	return d.PageIndex + 1
}

// DetectionFromMatch converts a matcher result for the given page into a
// Detection, scaling the candidate's [0,1] confidence to [0,100].
// A nil match yields a Detection with no number and zero confidence.
func DetectionFromMatch(pageIndex int, m *Match) Detection {
	if m == nil {
		return Detection{PageIndex: pageIndex}
	}
	return Detection{
		PageIndex:  pageIndex,
		Number:     m.Candidate.Number,
		Position:   m.Candidate.BBox,
		Confidence: m.Candidate.Confidence * 100.0,
		RawText:    m.Candidate.Text,
	}
}
