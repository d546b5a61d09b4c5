package testutil

import (
	"strconv"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
)

// PageCandidate builds a single high-confidence candidate for a page number,
// placed in the bottom-center footer of a nominal A5 scan.
func PageCandidate(number int) pagenum.Candidate {
	return pagenum.NewCandidate(
		strconv.Itoa(number),
		geometry.NewRectangle(480+number%7, 2700, 40, 30),
		0.95,
	)
}

// SequentialBook builds per-page candidate lists for a book whose printed
// numbers start at 1 on the first page.
func SequentialBook(pages int) [][]pagenum.Candidate {
	book := make([][]pagenum.Candidate, pages)
	for i := range book {
		book[i] = []pagenum.Candidate{PageCandidate(i + 1)}
	}
	return book
}

// ShiftedBook builds candidates for a book with unnumbered front matter:
// the first frontMatter pages have no candidates, and printed numbering
// starts at 1 after them.
func ShiftedBook(pages, frontMatter int) [][]pagenum.Candidate {
	book := make([][]pagenum.Candidate, pages)
	for i := frontMatter; i < pages; i++ {
		book[i] = []pagenum.Candidate{PageCandidate(i - frontMatter + 1)}
	}
	return book
}

// SequentialDetections builds detections with printed number equal to the
// physical page for every page in [1, pages].
func SequentialDetections(pages int) []pagenum.Detection {
	return ShiftedDetections(pages, 0)
}

// ShiftedDetections builds detections for a book with unnumbered front
// matter: the first frontMatter pages carry no detection, and printed
// numbering starts at 1 after them.
func ShiftedDetections(pages, frontMatter int) []pagenum.Detection {
	detections := make([]pagenum.Detection, 0, max(pages-frontMatter, 0))
	for i := frontMatter; i < pages; i++ {
		n := i - frontMatter + 1
		detections = append(detections, pagenum.Detection{
			PageIndex:  i,
			Number:     &n,
			Position:   geometry.NewRectangle(480, 2700, 40, 30),
			Confidence: 95,
			RawText:    strconv.Itoa(n),
		})
	}
	return detections
}
