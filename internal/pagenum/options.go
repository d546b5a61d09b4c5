package pagenum

import "encoding/json"

// Tunable defaults and clamp bounds for detection options.
const (
	// DefaultSearchRegionPercent is the default search region height as a
	// percentage of the image height.
	DefaultSearchRegionPercent = 10.0
	// VerticalSearchRegionPercent is the larger search region used for
	// vertical text layouts (Japanese books).
	VerticalSearchRegionPercent = 12.0
	// DefaultMinConfidence is the default minimum OCR confidence.
	DefaultMinConfidence = 60.0
	// StrictMinConfidence is the threshold of the strict profile.
	StrictMinConfidence = 80.0

	minSearchRegion    = 5.0
	maxSearchRegion    = 50.0
	minConfidenceClamp = 0.0
	maxConfidenceClamp = 100.0
)

// Position describes where page numbers are printed on the page.
type Position int

const (
	// BottomCenter is a page number centered at the bottom.
	BottomCenter Position = iota
	// BottomOutside is at the bottom outer edge (odd: right, even: left).
	BottomOutside
	// BottomInside is at the bottom inner edge.
	BottomInside
	// TopCenter is centered at the top.
	TopCenter
	// TopOutside is at the top outer edge.
	TopOutside
)

// String returns a human-readable name for the position.
func (p Position) String() string {
	switch p {
	case BottomCenter:
		return "bottom-center"
	case BottomOutside:
		return "bottom-outside"
	case BottomInside:
		return "bottom-inside"
	case TopCenter:
		return "top-center"
	case TopOutside:
		return "top-outside"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the position name rather than its numeric value.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Options holds the tunables for page number detection. Options are
// threaded explicitly into the functions that need them rather than read
// from global state, so tests can vary them independently.
type Options struct {
	// SearchRegionPercent is the percentage of the image height to search,
	// clamped to [5, 50].
	SearchRegionPercent float64 `mapstructure:"search_region_percent" yaml:"search_region_percent" json:"search_region_percent"`
	// OCRLanguage selects the language profile of the external OCR engine.
	OCRLanguage string `mapstructure:"ocr_language" yaml:"ocr_language" json:"ocr_language"`
	// MinConfidence is the minimum OCR confidence in [0, 100].
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
	// NumbersOnly restricts the OCR engine to digit glyphs.
	NumbersOnly bool `mapstructure:"numbers_only" yaml:"numbers_only" json:"numbers_only"`
	// PositionHint optionally pins where page numbers are expected.
	PositionHint *Position `mapstructure:"position_hint" yaml:"position_hint" json:"position_hint,omitempty"`
}

// DefaultOptions returns the default detection options.
func DefaultOptions() Options {
	return Options{
		SearchRegionPercent: DefaultSearchRegionPercent,
		OCRLanguage:         "jpn+eng",
		MinConfidence:       DefaultMinConfidence,
		NumbersOnly:         true,
	}
}

// JapaneseOptions returns options tuned for Japanese documents, with the
// wider search region vertical layouts need.
func JapaneseOptions() Options {
	o := DefaultOptions()
	o.OCRLanguage = "jpn"
	o.SearchRegionPercent = VerticalSearchRegionPercent
	return o
}

// EnglishOptions returns options tuned for English documents.
func EnglishOptions() Options {
	o := DefaultOptions()
	o.OCRLanguage = "eng"
	return o
}

// StrictOptions returns options with a high confidence threshold.
func StrictOptions() Options {
	o := DefaultOptions()
	o.MinConfidence = StrictMinConfidence
	return o
}

// OptionsForLanguage returns the options profile for a language name.
// Unknown names fall back to the defaults.
func OptionsForLanguage(lang string) Options {
	switch lang {
	case "japanese", "jpn":
		return JapaneseOptions()
	case "english", "eng":
		return EnglishOptions()
	case "strict":
		return StrictOptions()
	default:
		return DefaultOptions()
	}
}

// WithSearchRegionPercent returns a copy with the search region set,
// clamped to [5, 50].
func (o Options) WithSearchRegionPercent(percent float64) Options {
	o.SearchRegionPercent = clamp(percent, minSearchRegion, maxSearchRegion)
	return o
}

// WithMinConfidence returns a copy with the confidence threshold set,
// clamped to [0, 100].
func (o Options) WithMinConfidence(confidence float64) Options {
	o.MinConfidence = clamp(confidence, minConfidenceClamp, maxConfidenceClamp)
	return o
}

// WithOCRLanguage returns a copy with the OCR language set.
func (o Options) WithOCRLanguage(lang string) Options {
	o.OCRLanguage = lang
	return o
}

// WithNumbersOnly returns a copy with the numbers-only flag set.
func (o Options) WithNumbersOnly(only bool) Options {
	o.NumbersOnly = only
	return o
}

// WithPositionHint returns a copy with the position hint set.
func (o Options) WithPositionHint(pos Position) Options {
	o.PositionHint = &pos
	return o
}

// Normalize clamps all tunables into their valid ranges.
func (o Options) Normalize() Options {
	o.SearchRegionPercent = clamp(o.SearchRegionPercent, minSearchRegion, maxSearchRegion)
	o.MinConfidence = clamp(o.MinConfidence, minConfidenceClamp, maxConfidenceClamp)
	return o
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
