package pagenum

import (
	"strings"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"golang.org/x/text/width"
)

// Candidate is one OCR-detected text region on a page that may be a page
// number. Candidates are created from raw OCR output and consumed once by
// the matcher; they are never mutated.
type Candidate struct {
	// Text is the raw OCR string.
	Text string `json:"text"`
	// Number is the parsed page number, nil when Text is not a plain
	// decimal number.
	Number *int `json:"number,omitempty"`
	// BBox is the bounding box in absolute page-pixel coordinates.
	BBox geometry.Rectangle `json:"bbox"`
	// Confidence is the OCR confidence in [0, 1].
	Confidence float64 `json:"confidence"`
	// OCRSuccess is true when any non-empty text was read, independent
	// of whether it parsed as a number.
	OCRSuccess bool `json:"ocr_success"`
}

// NewCandidate builds a candidate from raw OCR output, parsing the text as
// a decimal page number when possible. Full-width digits (common in
// Japanese scans) are folded to ASCII before parsing.
func NewCandidate(text string, bbox geometry.Rectangle, confidence float64) Candidate {
	trimmed := strings.TrimSpace(text)
	number := parsePageNumber(trimmed)
	return Candidate{
		Text:       text,
		Number:     number,
		BBox:       bbox,
		Confidence: confidence,
		OCRSuccess: number != nil || trimmed != "",
	}
}

// DistanceTo returns the distance from the candidate's bbox center to the
// given reference point.
func (c Candidate) DistanceTo(p geometry.Point) float64 {
	return c.BBox.DistanceTo(p)
}

// parsePageNumber parses a trimmed OCR string as a non-negative decimal
// number. Signs, separators, and any non-digit characters reject the
// parse; full-width digits are accepted.
func parsePageNumber(s string) *int {
	folded := width.Narrow.String(s)
	if folded == "" {
		return nil
	}
	n := 0
	for _, r := range folded {
		if r < '0' || r > '9' {
			return nil
		}
		d := int(r - '0')
		if n > (maxPageNumber-d)/10 {
			return nil
		}
		n = n*10 + d
	}
	return &n
}

// maxPageNumber bounds parsed page numbers; anything larger is OCR noise.
const maxPageNumber = 1_000_000
