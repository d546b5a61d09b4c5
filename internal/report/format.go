package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/folio/internal/offset"
	"github.com/MeKo-Tech/folio/internal/pagenum"
	"gopkg.in/yaml.v3"
)

// FormatAnalysis renders a book offset analysis in the requested format
// (json, yaml, or text).
func FormatAnalysis(analysis *offset.BookOffsetAnalysis, format string) (string, error) {
	switch format {
	case "json":
		bts, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal analysis: %w", err)
		}
		return string(bts), nil
	case "yaml":
		bts, err := yaml.Marshal(analysis)
		if err != nil {
			return "", fmt.Errorf("failed to marshal analysis: %w", err)
		}
		return string(bts), nil
	case "text":
		return formatAnalysisText(analysis), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatAnalysisText(analysis *offset.BookOffsetAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Page number shift: %d\n", analysis.PageNumberShift)
	fmt.Fprintf(&b, "Matched pages:     %d\n", analysis.MatchCount)
	fmt.Fprintf(&b, "Confidence:        %.3f\n", analysis.Confidence)
	if analysis.OddAvgX != nil && analysis.OddAvgY != nil {
		fmt.Fprintf(&b, "Odd reference:     (%d, %d)\n", *analysis.OddAvgX, *analysis.OddAvgY)
	}
	if analysis.EvenAvgX != nil && analysis.EvenAvgY != nil {
		fmt.Fprintf(&b, "Even reference:    (%d, %d)\n", *analysis.EvenAvgX, *analysis.EvenAvgY)
	}
	b.WriteString("\npage  logical  shift_x  shift_y\n")
	for _, p := range analysis.PageOffsets {
		logical := "-"
		if p.LogicalPage != nil {
			logical = strconv.Itoa(*p.LogicalPage)
		}
		fmt.Fprintf(&b, "%4d  %7s  %7d  %7d\n", p.PhysicalPage, logical, p.ShiftX, p.ShiftY)
	}
	return b.String()
}

// matchesReport pairs batch results with their stage statistics.
type matchesReport struct {
	Matches []*pagenum.Match           `json:"matches"`
	Stats   pagenum.FallbackMatchStats `json:"stats"`
}

// FormatMatches renders batch matching results in the requested format
// (json, csv, or text).
func FormatMatches(matches []*pagenum.Match, format string) (string, error) {
	stats := pagenum.StatsFromMatches(matches)
	switch format {
	case "json":
		bts, err := json.MarshalIndent(matchesReport{Matches: matches, Stats: stats}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal matches: %w", err)
		}
		return string(bts), nil
	case "csv":
		return formatMatchesCSV(matches)
	case "text":
		return formatMatchesText(matches, stats), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatMatchesCSV(matches []*pagenum.Match) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"page", "expected", "stage", "score", "distance", "text", "x", "y", "width", "height"}); err != nil {
		return "", err
	}
	for i, m := range matches {
		row := []string{strconv.Itoa(i + 1), "", "", "", "", "", "", "", "", ""}
		if m != nil {
			row = []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(m.ExpectedNumber),
				m.Stage.String(),
				strconv.FormatFloat(m.Score, 'f', 3, 64),
				strconv.FormatFloat(m.Distance, 'f', 1, 64),
				m.Candidate.Text,
				strconv.Itoa(m.Candidate.BBox.X),
				strconv.Itoa(m.Candidate.BBox.Y),
				strconv.Itoa(m.Candidate.BBox.Width),
				strconv.Itoa(m.Candidate.BBox.Height),
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatMatchesText(matches []*pagenum.Match, stats pagenum.FallbackMatchStats) string {
	var b strings.Builder
	b.WriteString("page  expected  stage        score  distance  text\n")
	for i, m := range matches {
		if m == nil {
			fmt.Fprintf(&b, "%4d  %8s  %-11s\n", i+1, "-", "not-found")
			continue
		}
		fmt.Fprintf(&b, "%4d  %8d  %-11s  %.3f  %8.1f  %s\n",
			i+1, m.ExpectedNumber, m.Stage.String(), m.Score, m.Distance, m.Candidate.Text)
	}
	fmt.Fprintf(&b, "\nDetected %d/%d pages (%.0f%%), high confidence %.0f%%\n",
		stats.Total-stats.NotFound, stats.Total,
		stats.DetectionRate()*100, stats.HighConfidenceRate()*100)
	return b.String()
}

// inspectionReport pairs the book-level detection analysis with the
// page-order validation result.
type inspectionReport struct {
	Analysis   pagenum.Analysis `json:"analysis"`
	OrderValid bool             `json:"order_valid"`
}

// FormatInspection renders a book-level detection analysis in the
// requested format (json or text).
func FormatInspection(analysis pagenum.Analysis, orderValid bool, format string) (string, error) {
	switch format {
	case "json":
		bts, err := json.MarshalIndent(inspectionReport{Analysis: analysis, OrderValid: orderValid}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal inspection: %w", err)
		}
		return string(bts), nil
	case "text":
		return formatInspectionText(analysis, orderValid), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatInspectionText(analysis pagenum.Analysis, orderValid bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Detections:         %d\n", len(analysis.Detections))
	fmt.Fprintf(&b, "Position pattern:   %s\n", analysis.PositionPattern)
	fmt.Fprintf(&b, "Odd avg center X:   %d\n", analysis.OddPageOffsetX)
	fmt.Fprintf(&b, "Even avg center X:  %d\n", analysis.EvenPageOffsetX)
	fmt.Fprintf(&b, "Overall confidence: %.1f\n", analysis.OverallConfidence)
	fmt.Fprintf(&b, "Order valid:        %t\n", orderValid)
	fmt.Fprintf(&b, "Missing numbers:    %s\n", intListOrNone(analysis.MissingPages))
	fmt.Fprintf(&b, "Duplicate numbers:  %s\n", intListOrNone(analysis.DuplicatePages))
	fmt.Fprintf(&b, "Roman-numbered:     %s\n", intListOrNone(analysis.RomanPages))
	return b.String()
}

func intListOrNone(xs []int) string {
	if len(xs) == 0 {
		return "none"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}
