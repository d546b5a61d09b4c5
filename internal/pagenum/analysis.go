package pagenum

import "strings"

// Analysis summarizes the page-number detections of one book: where the
// numbers are printed, how the odd and even groups sit horizontally, and
// which logical numbers are missing or duplicated.
type Analysis struct {
	// Detections are the per-page results the analysis was built from.
	Detections []Detection `json:"detections"`
	// PositionPattern is the inferred printing position.
	PositionPattern Position `json:"position_pattern"`
	// OddPageOffsetX is the average detection center X over odd logical
	// numbers, 0 when there are none.
	OddPageOffsetX int `json:"odd_page_offset_x"`
	// EvenPageOffsetX is the same for even logical numbers.
	EvenPageOffsetX int `json:"even_page_offset_x"`
	// OverallConfidence is the mean detection confidence in [0, 100].
	OverallConfidence float64 `json:"overall_confidence"`
	// MissingPages are offsets (from the smallest detected number) of
	// numbers absent from the detected range.
	MissingPages []int `json:"missing_pages"`
	// DuplicatePages are numbers detected more than once.
	DuplicatePages []int `json:"duplicate_pages"`
	// RomanPages are physical pages whose raw text reads as a roman
	// numeral instead of a decimal number, typical of front matter.
	RomanPages []int `json:"roman_pages"`
}

// positionPatternCenterTolerance is the largest odd/even average-X gap
// still classified as a centered pattern.
const positionPatternCenterTolerance = 50

// Analyze builds a book-level analysis from per-page detections.
func Analyze(detections []Detection) Analysis {
	pattern, oddAvg, evenAvg := analyzePattern(detections)

	numbers := detectedNumbers(detections)
	confidence := 0.0
	if len(detections) > 0 {
		sum := 0.0
		for _, d := range detections {
			sum += d.Confidence
		}
		confidence = sum / float64(len(detections))
	}

	return Analysis{
		Detections:        detections,
		PositionPattern:   pattern,
		OddPageOffsetX:    oddAvg,
		EvenPageOffsetX:   evenAvg,
		OverallConfidence: confidence,
		MissingPages:      findMissingPages(numbers),
		DuplicatePages:    findDuplicatePages(numbers),
		RomanPages:        findRomanPages(detections),
	}
}

// findRomanPages returns the physical pages whose raw text parses as a
// roman numeral but not as a decimal number.
func findRomanPages(detections []Detection) []int {
	var pages []int
	for _, d := range detections {
		if d.Number != nil {
			continue
		}
		if _, ok := ParseRoman(strings.TrimSpace(d.RawText)); ok {
			pages = append(pages, d.PhysicalPage())
		}
	}
	return pages
}

// ValidateOrder reports whether the detected numbers are strictly
// ascending in physical page order. Fewer than two detections are
// trivially ordered.
func ValidateOrder(detections []Detection) bool {
	numbers := detectedNumbers(detections)
	for i := 1; i < len(numbers); i++ {
		if numbers[i] <= numbers[i-1] {
			return false
		}
	}
	return true
}

func detectedNumbers(detections []Detection) []int {
	numbers := make([]int, 0, len(detections))
	for _, d := range detections {
		if d.Number != nil {
			numbers = append(numbers, *d.Number)
		}
	}
	return numbers
}

// analyzePattern classifies the printing position from the average
// detection center X of odd versus even logical numbers.
func analyzePattern(detections []Detection) (Position, int, int) {
	var oddXs, evenXs []int
	for _, d := range detections {
		if d.Number == nil {
			continue
		}
		centerX := d.Position.Center().X
		if *d.Number%2 == 1 {
			oddXs = append(oddXs, centerX)
		} else {
			evenXs = append(evenXs, centerX)
		}
	}

	oddAvg := averageInt(oddXs)
	evenAvg := averageInt(evenXs)

	pattern := BottomCenter
	switch {
	case abs(oddAvg-evenAvg) < positionPatternCenterTolerance:
		pattern = BottomCenter
	case oddAvg > evenAvg:
		pattern = BottomOutside
	default:
		pattern = BottomInside
	}
	return pattern, oddAvg, evenAvg
}

// findMissingPages returns, for each number absent from the detected
// range [min, max], its offset from the smallest detected number.
func findMissingPages(numbers []int) []int {
	if len(numbers) == 0 {
		return nil
	}
	lo, hi := numbers[0], numbers[0]
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		seen[n] = struct{}{}
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	var missing []int
	for n := lo; n <= hi; n++ {
		if _, ok := seen[n]; !ok {
			missing = append(missing, n-lo)
		}
	}
	return missing
}

// findDuplicatePages returns every number that appears more than once, one
// entry per extra occurrence, in detection order.
func findDuplicatePages(numbers []int) []int {
	seen := make(map[int]struct{}, len(numbers))
	var dups []int
	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			dups = append(dups, n)
			continue
		}
		seen[n] = struct{}{}
	}
	return dups
}

func averageInt(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return sum / len(xs)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
