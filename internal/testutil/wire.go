package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/MeKo-Tech/folio/internal/report"
)

// CandidatesFileContent encodes per-page candidate lists into the
// candidates input file format, applying the same search region to every
// page.
func CandidatesFileContent(book [][]pagenum.Candidate, region geometry.Rectangle) (string, error) {
	file := report.CandidatesFileJSON{Pages: make([]report.PageJSON, len(book))}
	for i, candidates := range book {
		page := report.PageJSON{
			Candidates: make([]report.CandidateJSON, 0, len(candidates)),
			Region: &report.RegionJSON{
				X:      region.X,
				Y:      region.Y,
				Width:  region.Width,
				Height: region.Height,
			},
		}
		for _, c := range candidates {
			page.Candidates = append(page.Candidates, report.CandidateJSON{
				Text:       c.Text,
				X:          c.BBox.X,
				Y:          c.BBox.Y,
				Width:      c.BBox.Width,
				Height:     c.BBox.Height,
				Confidence: c.Confidence,
			})
		}
		file.Pages[i] = page
	}

	data, err := json.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates file: %w", err)
	}
	return string(data), nil
}

// DetectionsFileContent encodes detections into the detections input file
// format.
func DetectionsFileContent(detections []pagenum.Detection) (string, error) {
	file := report.DetectionsFileJSON{Detections: make([]report.DetectionJSON, len(detections))}
	for i, d := range detections {
		file.Detections[i] = report.DetectionJSON{
			PageIndex:  d.PageIndex,
			Number:     d.Number,
			X:          d.Position.X,
			Y:          d.Position.Y,
			Width:      d.Position.Width,
			Height:     d.Position.Height,
			Confidence: d.Confidence,
			RawText:    d.RawText,
		}
	}

	data, err := json.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("failed to encode detections file: %w", err)
	}
	return string(data), nil
}
