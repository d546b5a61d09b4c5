package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/offset"
	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnalysis() *offset.BookOffsetAnalysis {
	logical := 1
	x, y := 505, 2715
	return &offset.BookOffsetAnalysis{
		PageNumberShift: 0,
		PageOffsets: []offset.PageOffsetResult{
			{PhysicalPage: 1, LogicalPage: &logical, ShiftX: 2, ShiftY: -1, IsOdd: true},
			offset.NoOffset(2),
		},
		OddAvgX:    &x,
		OddAvgY:    &y,
		MatchCount: 1,
		Confidence: 0.45,
	}
}

func TestFormatAnalysisJSON(t *testing.T) {
	out, err := FormatAnalysis(sampleAnalysis(), "json")
	require.NoError(t, err)

	var decoded offset.BookOffsetAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded.MatchCount)
	require.Len(t, decoded.PageOffsets, 2)
	assert.Equal(t, 2, decoded.PageOffsets[0].ShiftX)
}

func TestFormatAnalysisYAML(t *testing.T) {
	out, err := FormatAnalysis(sampleAnalysis(), "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "match_count: 1")
}

func TestFormatAnalysisText(t *testing.T) {
	out, err := FormatAnalysis(sampleAnalysis(), "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Page number shift: 0")
	assert.Contains(t, out, "Odd reference:     (505, 2715)")
	assert.Contains(t, out, "shift_x")
}

func TestFormatAnalysisUnsupported(t *testing.T) {
	_, err := FormatAnalysis(sampleAnalysis(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func sampleMatches() []*pagenum.Match {
	return []*pagenum.Match{
		{
			Candidate:      pagenum.NewCandidate("1", geometry.NewRectangle(480, 2700, 50, 30), 0.95),
			Stage:          pagenum.ExactMatch,
			Score:          1.0,
			Distance:       12.5,
			ExpectedNumber: 1,
		},
		nil,
	}
}

func TestFormatMatchesJSON(t *testing.T) {
	out, err := FormatMatches(sampleMatches(), "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"stats"`)
	assert.Contains(t, out, `"expected_number": 1`)
}

func TestFormatMatchesCSV(t *testing.T) {
	out, err := FormatMatches(sampleMatches(), "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3) // header + 2 pages
	assert.Contains(t, lines[0], "stage")
	assert.Contains(t, lines[1], "exact")
}

func TestFormatMatchesText(t *testing.T) {
	out, err := FormatMatches(sampleMatches(), "text")
	require.NoError(t, err)
	assert.Contains(t, out, "not-found")
	assert.Contains(t, out, "Detected 1/2 pages")
}

func TestFormatMatchesUnsupported(t *testing.T) {
	_, err := FormatMatches(sampleMatches(), "toml")
	require.Error(t, err)
}

func sampleInspection() pagenum.Analysis {
	one := 1
	three := 3
	return pagenum.Analyze([]pagenum.Detection{
		{PageIndex: 0, Number: &one, Position: geometry.NewRectangle(480, 2700, 40, 30), Confidence: 90, RawText: "1"},
		{PageIndex: 1, Number: &three, Position: geometry.NewRectangle(520, 2700, 40, 30), Confidence: 80, RawText: "3"},
	})
}

func TestFormatInspectionJSON(t *testing.T) {
	out, err := FormatInspection(sampleInspection(), true, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"position_pattern": "bottom-outside"`)
	assert.Contains(t, out, `"order_valid": true`)
}

func TestFormatInspectionText(t *testing.T) {
	out, err := FormatInspection(sampleInspection(), false, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Order valid:        false")
	// Number 2 is missing from the detected range [1, 3].
	assert.Contains(t, out, "Missing numbers:    1")
	assert.Contains(t, out, "Roman-numbered:     none")
}

func TestFormatInspectionUnsupported(t *testing.T) {
	_, err := FormatInspection(sampleInspection(), true, "csv")
	require.Error(t, err)
}
