package offset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOffset(t *testing.T) {
	r := NoOffset(5)
	assert.Equal(t, 5, r.PhysicalPage)
	assert.Nil(t, r.LogicalPage)
	assert.Zero(t, r.ShiftX)
	assert.Zero(t, r.ShiftY)
	assert.Nil(t, r.Position)
	assert.True(t, r.IsOdd)

	assert.False(t, NoOffset(6).IsOdd)
}

func TestBookOffsetAnalysisZeroValue(t *testing.T) {
	var a BookOffsetAnalysis
	assert.Zero(t, a.PageNumberShift)
	assert.Empty(t, a.PageOffsets)
	assert.Zero(t, a.MatchCount)
	assert.Zero(t, a.Confidence)
	assert.Nil(t, a.OddAvgX)
}

func TestIsReliable(t *testing.T) {
	var a BookOffsetAnalysis

	assert.False(t, a.IsReliable(100))

	a.MatchCount = 4
	assert.False(t, a.IsReliable(100)) // below the absolute minimum

	a.MatchCount = 5
	assert.False(t, a.IsReliable(100)) // below one third of pages
	assert.True(t, a.IsReliable(15))

	a.MatchCount = 40
	assert.True(t, a.IsReliable(100))
}

func TestGetOffset(t *testing.T) {
	a := BookOffsetAnalysis{
		PageOffsets: []PageOffsetResult{NoOffset(1), NoOffset(2), NoOffset(3)},
	}

	p := a.GetOffset(2)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.PhysicalPage)

	assert.Nil(t, a.GetOffset(99))
}
