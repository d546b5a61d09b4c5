package offset

import "github.com/MeKo-Tech/folio/internal/geometry"

// PageOffsetResult is the geometric correction for one physical page.
type PageOffsetResult struct {
	// PhysicalPage is the 1-indexed position in the scanned file.
	PhysicalPage int `json:"physical_page" yaml:"physical_page"`
	// LogicalPage is the printed page number, nil when the page did not
	// match the book-wide shift.
	LogicalPage *int `json:"logical_page,omitempty" yaml:"logical_page,omitempty"`
	// ShiftX and ShiftY move the detected page number onto the group
	// reference point. Zero for unmatched pages.
	ShiftX int `json:"shift_x" yaml:"shift_x"`
	ShiftY int `json:"shift_y" yaml:"shift_y"`
	// Position is where the page number was detected, when it was.
	Position *geometry.Rectangle `json:"position,omitempty" yaml:"position,omitempty"`
	// IsOdd is the parity of the physical page number.
	IsOdd bool `json:"is_odd" yaml:"is_odd"`
}

// NoOffset returns the zero-shift stub used for pages without a usable
// detection.
func NoOffset(physicalPage int) PageOffsetResult {
	return PageOffsetResult{
		PhysicalPage: physicalPage,
		IsOdd:        physicalPage%2 == 1,
	}
}

// BookOffsetAnalysis is the book-wide alignment result.
type BookOffsetAnalysis struct {
	// PageNumberShift is physical page minus logical page, assumed
	// constant across the book.
	PageNumberShift int `json:"page_number_shift" yaml:"page_number_shift"`
	// PageOffsets covers, after interpolation, every physical page
	// 1..total, sorted ascending without duplicates.
	PageOffsets []PageOffsetResult `json:"page_offsets" yaml:"page_offsets"`
	// Group reference coordinates, nil when the parity group is empty.
	OddAvgX  *int `json:"odd_avg_x,omitempty" yaml:"odd_avg_x,omitempty"`
	EvenAvgX *int `json:"even_avg_x,omitempty" yaml:"even_avg_x,omitempty"`
	OddAvgY  *int `json:"odd_avg_y,omitempty" yaml:"odd_avg_y,omitempty"`
	EvenAvgY *int `json:"even_avg_y,omitempty" yaml:"even_avg_y,omitempty"`
	// MatchCount is the number of pages whose detected number agrees
	// with the shift.
	MatchCount int `json:"match_count" yaml:"match_count"`
	// Confidence is the normalized shift score in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// IsReliable reports whether the analysis should be trusted beyond zero
// shift: at least 5 matches and at least a third of all pages matched.
func (a *BookOffsetAnalysis) IsReliable(totalPages int) bool {
	return a.MatchCount >= 5 && a.MatchCount*3 >= totalPages
}

// GetOffset returns the offset entry for a physical page, nil when absent.
func (a *BookOffsetAnalysis) GetOffset(physicalPage int) *PageOffsetResult {
	for i := range a.PageOffsets {
		if a.PageOffsets[i].PhysicalPage == physicalPage {
			return &a.PageOffsets[i]
		}
	}
	return nil
}
