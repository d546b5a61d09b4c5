package pagenum

import (
	"testing"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandidateParsesNumber(t *testing.T) {
	c := NewCandidate("42", geometry.NewRectangle(100, 900, 50, 30), 0.95)
	require.NotNil(t, c.Number)
	assert.Equal(t, 42, *c.Number)
	assert.True(t, c.OCRSuccess)
	assert.InDelta(t, 0.95, c.Confidence, 0.0001)
}

func TestNewCandidateTrimsBeforeParsing(t *testing.T) {
	c := NewCandidate("  123 \n", geometry.NewRectangle(0, 0, 10, 10), 0.5)
	require.NotNil(t, c.Number)
	assert.Equal(t, 123, *c.Number)
}

func TestNewCandidateFullWidthDigits(t *testing.T) {
	// Japanese scans frequently OCR page numbers as full-width digits.
	c := NewCandidate("１２３", geometry.NewRectangle(0, 0, 10, 10), 0.8)
	require.NotNil(t, c.Number)
	assert.Equal(t, 123, *c.Number)
}

func TestNewCandidateNonNumericText(t *testing.T) {
	c := NewCandidate("abc", geometry.NewRectangle(100, 900, 50, 30), 0.80)
	assert.Nil(t, c.Number)
	// Still counts as OCR success: text was read, it just isn't a number.
	assert.True(t, c.OCRSuccess)
}

func TestNewCandidateRejectsSignsAndMixedText(t *testing.T) {
	for _, text := range []string{"-5", "+12", "12a", "1 2", "1.5", ""} {
		c := NewCandidate(text, geometry.NewRectangle(0, 0, 10, 10), 0.5)
		assert.Nil(t, c.Number, "text %q should not parse", text)
	}
}

func TestNewCandidateEmptyText(t *testing.T) {
	c := NewCandidate("", geometry.NewRectangle(100, 900, 50, 30), 0.50)
	assert.False(t, c.OCRSuccess)
	assert.Nil(t, c.Number)

	// Whitespace-only text is empty after trimming.
	c = NewCandidate("   ", geometry.NewRectangle(100, 900, 50, 30), 0.50)
	assert.False(t, c.OCRSuccess)
}

func TestCandidateDistanceTo(t *testing.T) {
	c := NewCandidate("7", geometry.NewRectangle(0, 0, 100, 100), 0.9)
	// BBox center is (50, 50).
	assert.InDelta(t, 50.0, c.DistanceTo(geometry.Point{X: 50, Y: 100}), 0.001)
}

func TestDetectionFromMatch(t *testing.T) {
	m := &Match{
		Candidate:      NewCandidate("42", geometry.NewRectangle(100, 900, 50, 30), 0.95),
		Stage:          ExactMatch,
		Score:          1.0,
		Distance:       10.0,
		ExpectedNumber: 42,
	}
	d := DetectionFromMatch(4, m)
	assert.Equal(t, 4, d.PageIndex)
	assert.Equal(t, 5, d.PhysicalPage())
	require.NotNil(t, d.Number)
	assert.Equal(t, 42, *d.Number)
	assert.InDelta(t, 95.0, d.Confidence, 0.0001)
	assert.Equal(t, "42", d.RawText)
}

func TestDetectionFromMatchNil(t *testing.T) {
	d := DetectionFromMatch(2, nil)
	assert.Equal(t, 2, d.PageIndex)
	assert.Nil(t, d.Number)
	assert.Zero(t, d.Confidence)
}
