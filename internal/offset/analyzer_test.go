package offset

import (
	"testing"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeOffsetsEmpty(t *testing.T) {
	a := AnalyzeOffsets(nil, 7000)
	assert.Zero(t, a.PageNumberShift)
	assert.Empty(t, a.PageOffsets)
	assert.Zero(t, a.Confidence)
}

func TestAnalyzeOffsetsSequentialBook(t *testing.T) {
	var dets []pagenum.Detection
	for i := 0; i < 12; i++ {
		dets = append(dets, det(i, i+1, geometry.NewRectangle(480, 2700, 50, 30), 90))
	}
	a := AnalyzeOffsets(dets, 2800)

	assert.Equal(t, 0, a.PageNumberShift)
	assert.Equal(t, 12, a.MatchCount)
	assert.Len(t, a.PageOffsets, 12)
	assert.True(t, a.IsReliable(12))

	// Identical detection positions: every matched page needs no shift.
	for _, p := range a.PageOffsets {
		require.NotNil(t, p.LogicalPage)
		assert.Equal(t, p.PhysicalPage, *p.LogicalPage)
		assert.Zero(t, p.ShiftX)
		assert.Zero(t, p.ShiftY)
	}
}

func TestAnalyzeOffsetsReliabilityGate(t *testing.T) {
	// Only 3 usable detections out of 3: match count below the minimum
	// of 5 returns zero-confidence stubs.
	dets := []pagenum.Detection{
		det(0, 1, geometry.NewRectangle(480, 2700, 50, 30), 90),
		det(1, 2, geometry.NewRectangle(480, 2700, 50, 30), 90),
		det(2, 3, geometry.NewRectangle(480, 2700, 50, 30), 90),
	}
	a := AnalyzeOffsets(dets, 2800)

	assert.Zero(t, a.PageNumberShift)
	assert.Zero(t, a.MatchCount)
	assert.Zero(t, a.Confidence)
	require.Len(t, a.PageOffsets, 3)
	for i, p := range a.PageOffsets {
		assert.Equal(t, i+1, p.PhysicalPage)
		assert.Nil(t, p.LogicalPage)
		assert.Zero(t, p.ShiftX)
		assert.Zero(t, p.ShiftY)
	}
}

func TestAnalyzeOffsetsRatioGate(t *testing.T) {
	// 6 matches out of 30 pages is below the one-third ratio even though
	// it clears the absolute minimum.
	var dets []pagenum.Detection
	for i := 0; i < 6; i++ {
		dets = append(dets, det(i, i+1, geometry.NewRectangle(480, 2700, 50, 30), 90))
	}
	for i := 6; i < 30; i++ {
		dets = append(dets, blankDet(i))
	}
	a := AnalyzeOffsets(dets, 2800)
	assert.Zero(t, a.MatchCount)
	assert.Zero(t, a.Confidence)
	assert.Len(t, a.PageOffsets, 30)
}

func TestAnalyzeOffsetsShiftedBook(t *testing.T) {
	// Six pages of front matter, then printed numbers starting at 1.
	var dets []pagenum.Detection
	for i := 0; i < 6; i++ {
		dets = append(dets, blankDet(i))
	}
	for i := 6; i < 24; i++ {
		x := 100
		if i%2 == 1 {
			x = 900 // even physical page (index odd)
		}
		dets = append(dets, det(i, i-5, geometry.NewRectangle(x, 2700, 50, 30), 85))
	}
	a := AnalyzeOffsets(dets, 2800)

	assert.Equal(t, 6, a.PageNumberShift)
	assert.Equal(t, 18, a.MatchCount)
	require.NotNil(t, a.OddAvgX)
	require.NotNil(t, a.EvenAvgX)
	assert.Less(t, *a.OddAvgX, 400)
	assert.Greater(t, *a.EvenAvgX, 600)

	// Stubs for front matter, shifts for matched pages.
	for _, p := range a.PageOffsets {
		if p.PhysicalPage <= 6 {
			assert.Nil(t, p.LogicalPage)
		} else {
			require.NotNil(t, p.LogicalPage)
			assert.Equal(t, p.PhysicalPage-6, *p.LogicalPage)
		}
	}
}

func TestAnalyzeOffsetsYAlignment(t *testing.T) {
	// Odd and even groups sit at slightly different heights; under the
	// threshold the Y references collapse to their average.
	var dets []pagenum.Detection
	for i := 0; i < 12; i++ {
		y := 2700
		if i%2 == 1 {
			y = 2800
		}
		dets = append(dets, det(i, i+1, geometry.NewRectangle(480, y, 50, 30), 90))
	}
	a := AnalyzeOffsets(dets, 3000)

	require.NotNil(t, a.OddAvgY)
	require.NotNil(t, a.EvenAvgY)
	assert.Equal(t, *a.OddAvgY, *a.EvenAvgY)
}

func TestAnalyzeOffsetsYAlignmentOverThreshold(t *testing.T) {
	var dets []pagenum.Detection
	for i := 0; i < 12; i++ {
		y := 100
		if i%2 == 1 {
			y = 2800
		}
		dets = append(dets, det(i, i+1, geometry.NewRectangle(480, y, 50, 30), 90))
	}
	a := AnalyzeOffsets(dets, 3000)

	require.NotNil(t, a.OddAvgY)
	require.NotNil(t, a.EvenAvgY)
	assert.NotEqual(t, *a.OddAvgY, *a.EvenAvgY)
}

func TestAnalyzeOffsetsShiftTowardReference(t *testing.T) {
	// One odd page deviates from the cluster; its shift must move it to
	// the group reference point.
	var dets []pagenum.Detection
	for i := 0; i < 11; i++ {
		dets = append(dets, det(i, i+1, geometry.NewRectangle(480, 2700, 50, 30), 90))
	}
	// Physical page 12 (even) nudged right and down.
	dets = append(dets, det(11, 12, geometry.NewRectangle(520, 2720, 50, 30), 90))

	a := AnalyzeOffsets(dets, 2800)
	p := a.GetOffset(12)
	require.NotNil(t, p)
	require.NotNil(t, a.EvenAvgX)
	center := geometry.NewRectangle(520, 2720, 50, 30).Center()
	assert.Equal(t, *a.EvenAvgX-center.X, p.ShiftX)
}

func TestInterpolateMissingOffsets(t *testing.T) {
	a := BookOffsetAnalysis{
		PageOffsets: []PageOffsetResult{NoOffset(1), NoOffset(3), NoOffset(5)},
	}
	InterpolateMissingOffsets(&a, 5)

	require.Len(t, a.PageOffsets, 5)
	for i, p := range a.PageOffsets {
		assert.Equal(t, i+1, p.PhysicalPage)
	}
	// Pages 2 and 4 were inserted as zero-shift stubs.
	assert.Zero(t, a.PageOffsets[1].ShiftX)
	assert.Nil(t, a.PageOffsets[1].LogicalPage)
	assert.Zero(t, a.PageOffsets[3].ShiftY)
}

func TestInterpolateKeepsExistingEntries(t *testing.T) {
	logical := 3
	a := BookOffsetAnalysis{
		PageOffsets: []PageOffsetResult{
			{PhysicalPage: 3, LogicalPage: &logical, ShiftX: 7, ShiftY: -2, IsOdd: true},
		},
	}
	InterpolateMissingOffsets(&a, 4)

	require.Len(t, a.PageOffsets, 4)
	p := a.GetOffset(3)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.ShiftX)
	assert.Equal(t, -2, p.ShiftY)
	require.NotNil(t, p.LogicalPage)
	assert.Equal(t, 3, *p.LogicalPage)
}
