package offset

import (
	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
)

// AnalyzeOffsets derives the book-wide alignment model from per-page
// detections using the default thresholds. imageHeight is accepted for
// future use and not currently consulted.
func AnalyzeOffsets(detections []pagenum.Detection, imageHeight int) BookOffsetAnalysis {
	return AnalyzeOffsetsWithParams(detections, imageHeight, DefaultParams())
}

// AnalyzeOffsetsWithParams is AnalyzeOffsets with explicit thresholds.
//
// The analysis is total: insufficient matches produce a zero-confidence
// result with zero-shift stubs rather than an error. Callers must check
// Confidence or IsReliable before trusting anything beyond zero shift.
func AnalyzeOffsetsWithParams(detections []pagenum.Detection, _ int, params Params) BookOffsetAnalysis {
	if len(detections) == 0 {
		return BookOffsetAnalysis{}
	}

	shift := FindBestShift(detections, params)

	// Reliability gate: too few matches means the shift is guesswork.
	if shift.MatchCount < params.MinMatchCount ||
		float64(shift.MatchCount) < float64(len(detections))*params.MinMatchRatio {
		stubs := make([]PageOffsetResult, len(detections))
		for i, d := range detections {
			stubs[i] = NoOffset(d.PhysicalPage())
		}
		return BookOffsetAnalysis{PageOffsets: stubs}
	}

	// Rebuild the matched set: pages whose detected number agrees with
	// the shift, tagged with bbox and parity.
	var matched []PagePosition
	for _, d := range detections {
		if detectionMatchesShift(d, shift.Shift) {
			matched = append(matched, PagePosition{PhysicalPage: d.PhysicalPage(), BBox: d.Position})
		}
	}

	oddRef, oddOK := groupReference(matched, true, params)
	evenRef, evenOK := groupReference(matched, false, params)

	oddAvgX, oddAvgY := refCoords(oddRef, oddOK)
	evenAvgX, evenAvgY := refCoords(evenRef, evenOK)
	oddAvgY, evenAvgY = alignGroupY(oddAvgY, evenAvgY, params.YAlignThreshold)

	return BookOffsetAnalysis{
		PageNumberShift: shift.Shift,
		PageOffsets:     perPageOffsets(detections, shift.Shift, oddAvgX, evenAvgX, oddAvgY, evenAvgY),
		OddAvgX:         oddAvgX,
		EvenAvgX:        evenAvgX,
		OddAvgY:         oddAvgY,
		EvenAvgY:        evenAvgY,
		MatchCount:      shift.MatchCount,
		Confidence:      shift.Confidence,
	}
}

// groupReference runs the overlap-center algorithm on one parity group.
// The second return value is false when the group is empty.
func groupReference(matched []PagePosition, isOdd bool, params Params) (geometry.Point, bool) {
	any := false
	for _, p := range matched {
		if (p.PhysicalPage%2 == 1) == isOdd {
			any = true
			break
		}
	}
	if !any {
		return geometry.Point{}, false
	}
	return GroupReferencePosition(matched, isOdd, params), true
}

func refCoords(ref geometry.Point, ok bool) (*int, *int) {
	if !ok {
		return nil, nil
	}
	x, y := ref.X, ref.Y
	return &x, &y
}

// alignGroupY averages the two group Y references when they differ by
// less than the threshold, treating a small vertical discrepancy as scan
// noise rather than a genuine printing difference.
func alignGroupY(oddY, evenY *int, threshold int) (*int, *int) {
	if oddY == nil || evenY == nil {
		return oddY, evenY
	}
	if absInt(*oddY-*evenY) < threshold {
		avg := (*oddY + *evenY) / 2
		a, b := avg, avg
		return &a, &b
	}
	return oddY, evenY
}

// perPageOffsets computes, for every matched detection, the shift moving
// its bbox center onto the parity group's reference point. Unmatched
// detections get a zero-shift stub.
func perPageOffsets(
	detections []pagenum.Detection,
	shift int,
	oddAvgX, evenAvgX, oddAvgY, evenAvgY *int,
) []PageOffsetResult {
	results := make([]PageOffsetResult, len(detections))
	for i, d := range detections {
		physical := d.PhysicalPage()
		isOdd := physical%2 == 1

		if !detectionMatchesShift(d, shift) {
			results[i] = NoOffset(physical)
			continue
		}

		avgX, avgY := evenAvgX, evenAvgY
		if isOdd {
			avgX, avgY = oddAvgX, oddAvgY
		}

		center := d.Position.Center()
		logical := physical - shift
		pos := d.Position
		results[i] = PageOffsetResult{
			PhysicalPage: physical,
			LogicalPage:  &logical,
			ShiftX:       shiftToward(avgX, center.X),
			ShiftY:       shiftToward(avgY, center.Y),
			Position:     &pos,
			IsOdd:        isOdd,
		}
	}
	return results
}

// shiftToward returns ref − coord, or 0 when the group reference is absent.
func shiftToward(ref *int, coord int) int {
	if ref == nil {
		return 0
	}
	return *ref - coord
}

// InterpolateMissingOffsets inserts zero-shift stubs for every physical
// page in 1..totalPages without an entry, then sorts the list ascending,
// guaranteeing a dense, ordered cover of the whole book.
func InterpolateMissingOffsets(analysis *BookOffsetAnalysis, totalPages int) {
	existing := make(map[int]struct{}, len(analysis.PageOffsets))
	for _, p := range analysis.PageOffsets {
		existing[p.PhysicalPage] = struct{}{}
	}
	for page := 1; page <= totalPages; page++ {
		if _, ok := existing[page]; !ok {
			analysis.PageOffsets = append(analysis.PageOffsets, NoOffset(page))
		}
	}
	sortOffsets(analysis.PageOffsets)
}

func sortOffsets(offsets []PageOffsetResult) {
	// Insertion sort: the list is nearly sorted already.
	for i := 1; i < len(offsets); i++ {
		v := offsets[i]
		j := i - 1
		for j >= 0 && offsets[j].PhysicalPage > v.PhysicalPage {
			offsets[j+1] = offsets[j]
			j--
		}
		offsets[j+1] = v
	}
}
