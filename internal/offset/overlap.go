package offset

import (
	"math"
	"sort"

	"github.com/MeKo-Tech/folio/internal/geometry"
)

// CalcOverlapCenter computes a single representative alignment point from
// the bounding boxes of one parity group:
//
//  1. Expand every box by the configured margin.
//  2. For each box, tally how many boxes (itself included) contain or
//     overlap it.
//  3. Keep boxes whose tally reaches ceil(MinContainmentRatio × N); when
//     nothing qualifies, fall back to all boxes.
//  4. Sort the kept boxes by area ascending (stable, so equal areas keep
//     input order) and take the smallest ceil(TopSmallBBoxRatio) of them,
//     at least one. The smallest boxes are the least distorted by scan
//     noise and best represent the true glyph position.
//  5. Return the center of their running intersection; if the
//     intersection ever becomes empty, return the average of their
//     centers instead.
//
// Empty input returns the origin; a single box returns its center. The
// function never fails.
func CalcOverlapCenter(bboxes []geometry.Rectangle, params Params) geometry.Point {
	if len(bboxes) == 0 {
		return geometry.Point{}
	}
	if len(bboxes) == 1 {
		return bboxes[0].Center()
	}

	expanded := make([]geometry.Rectangle, len(bboxes))
	for i, b := range bboxes {
		expanded[i] = b.Expand(params.BBoxMarginPercent)
	}

	kept := voteContainment(expanded, params.MinContainmentRatio)
	selected := smallestByArea(expanded, kept, params.TopSmallBBoxRatio)
	return intersectionCenter(selected)
}

// voteContainment returns the indices of boxes whose containment/overlap
// tally reaches the threshold, or all indices when none does.
func voteContainment(expanded []geometry.Rectangle, minRatio float64) []int {
	minCount := int(math.Ceil(float64(len(expanded)) * minRatio))

	kept := make([]int, 0, len(expanded))
	for i, box := range expanded {
		count := 0
		for _, other := range expanded {
			if other.ContainsRect(box) || box.Overlaps(other) {
				count++
			}
		}
		if count >= minCount {
			kept = append(kept, i)
		}
	}

	if len(kept) == 0 {
		for i := range expanded {
			kept = append(kept, i)
		}
	}
	return kept
}

// smallestByArea picks the smallest topRatio share of the kept boxes, at
// least one. The sort is stable with the original index as tie-break, so
// equal-area boxes are selected deterministically in input order.
func smallestByArea(expanded []geometry.Rectangle, kept []int, topRatio float64) []geometry.Rectangle {
	sorted := append([]int(nil), kept...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return expanded[sorted[a]].Area() < expanded[sorted[b]].Area()
	})

	take := int(math.Ceil(float64(len(sorted)) * topRatio))
	if take < 1 {
		take = 1
	}
	selected := make([]geometry.Rectangle, take)
	for i, idx := range sorted[:take] {
		selected[i] = expanded[idx]
	}
	return selected
}

// intersectionCenter folds the boxes left to right through Intersection
// and returns the center of the result. An empty intersection at any step
// abandons the fold and returns the average of the boxes' centers.
func intersectionCenter(bboxes []geometry.Rectangle) geometry.Point {
	if len(bboxes) == 0 {
		return geometry.Point{}
	}
	if len(bboxes) == 1 {
		return bboxes[0].Center()
	}

	running := bboxes[0]
	for _, b := range bboxes[1:] {
		next, ok := running.Intersection(b)
		if !ok {
			return averageCenter(bboxes)
		}
		running = next
	}
	return running.Center()
}

// averageCenter is the arithmetic mean of the boxes' centers.
func averageCenter(bboxes []geometry.Rectangle) geometry.Point {
	if len(bboxes) == 0 {
		return geometry.Point{}
	}
	var sumX, sumY int64
	for _, b := range bboxes {
		c := b.Center()
		sumX += int64(c.X)
		sumY += int64(c.Y)
	}
	n := int64(len(bboxes))
	return geometry.Point{X: int(sumX / n), Y: int(sumY / n)}
}

// GroupReferencePosition computes the alignment target for one parity
// group of physical pages. Pages whose parity does not match isOdd are
// ignored.
func GroupReferencePosition(positions []PagePosition, isOdd bool, params Params) geometry.Point {
	var group []geometry.Rectangle
	for _, p := range positions {
		if (p.PhysicalPage%2 == 1) == isOdd {
			group = append(group, p.BBox)
		}
	}
	return CalcOverlapCenter(group, params)
}

// PagePosition ties a detected page-number bbox to its physical page.
type PagePosition struct {
	PhysicalPage int
	BBox         geometry.Rectangle
}
