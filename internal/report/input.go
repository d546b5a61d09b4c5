package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
)

// CandidateJSON is the wire form of one OCR candidate as produced by the
// external OCR layer.
type CandidateJSON struct {
	Text       string  `json:"text"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// PageJSON is one page's candidate list.
type PageJSON struct {
	Candidates []CandidateJSON `json:"candidates"`
	// Region optionally overrides the search region for this page.
	Region *RegionJSON `json:"region,omitempty"`
}

// RegionJSON is a search region in page pixels.
type RegionJSON struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CandidatesFileJSON is the candidates input file: one entry per scanned
// page, in physical order.
type CandidatesFileJSON struct {
	Pages []PageJSON `json:"pages"`
}

// DetectionJSON is the wire form of one resolved per-page detection.
type DetectionJSON struct {
	PageIndex  int     `json:"page_index"`
	Number     *int    `json:"number,omitempty"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// DetectionsFileJSON is the detections input file.
type DetectionsFileJSON struct {
	Detections []DetectionJSON `json:"detections"`
}

// ReadCandidates decodes a candidates file into per-page candidate lists
// and index-aligned search regions (zero rectangles where no override was
// given).
func ReadCandidates(r io.Reader) ([][]pagenum.Candidate, []geometry.Rectangle, error) {
	var file CandidatesFileJSON
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, nil, fmt.Errorf("failed to decode candidates file: %w", err)
	}

	pages := make([][]pagenum.Candidate, len(file.Pages))
	regions := make([]geometry.Rectangle, len(file.Pages))
	for i, page := range file.Pages {
		candidates := make([]pagenum.Candidate, 0, len(page.Candidates))
		for _, c := range page.Candidates {
			bbox := geometry.NewRectangle(c.X, c.Y, c.Width, c.Height)
			candidates = append(candidates, pagenum.NewCandidate(c.Text, bbox, c.Confidence))
		}
		pages[i] = candidates
		if page.Region != nil {
			regions[i] = geometry.NewRectangle(page.Region.X, page.Region.Y, page.Region.Width, page.Region.Height)
		} else {
			regions[i] = pagenum.DefaultSearchRegion
		}
	}
	return pages, regions, nil
}

// ReadCandidatesFile opens and decodes a candidates file.
func ReadCandidatesFile(path string) ([][]pagenum.Candidate, []geometry.Rectangle, error) {
	f, err := os.Open(path) //nolint:gosec // G304: user-supplied input path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open candidates file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCandidates(f)
}

// ReadDetections decodes a detections file.
func ReadDetections(r io.Reader) ([]pagenum.Detection, error) {
	var file DetectionsFileJSON
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode detections file: %w", err)
	}

	detections := make([]pagenum.Detection, 0, len(file.Detections))
	for _, d := range file.Detections {
		detections = append(detections, pagenum.Detection{
			PageIndex:  d.PageIndex,
			Number:     d.Number,
			Position:   geometry.NewRectangle(d.X, d.Y, d.Width, d.Height),
			Confidence: d.Confidence,
			RawText:    d.RawText,
		})
	}
	return detections, nil
}

// ReadDetectionsFile opens and decodes a detections file.
func ReadDetectionsFile(path string) ([]pagenum.Detection, error) {
	f, err := os.Open(path) //nolint:gosec // G304: user-supplied input path
	if err != nil {
		return nil, fmt.Errorf("failed to open detections file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadDetections(f)
}
