package offset

// Params holds the tunable thresholds of offset analysis. They are
// threaded explicitly into every function rather than read from global
// state, so tests can vary them independently.
type Params struct {
	// MaxShiftTest bounds the brute-force shift search to
	// [-MaxShiftTest, MaxShiftTest).
	MaxShiftTest int `mapstructure:"max_shift_test" yaml:"max_shift_test" json:"max_shift_test"`
	// MinMatchCount is the minimum number of matched pages for a
	// reliable shift.
	MinMatchCount int `mapstructure:"min_match_count" yaml:"min_match_count" json:"min_match_count"`
	// MinMatchRatio is the minimum fraction of matched pages.
	MinMatchRatio float64 `mapstructure:"min_match_ratio" yaml:"min_match_ratio" json:"min_match_ratio"`
	// BBoxMarginPercent expands bounding boxes before the overlap vote.
	BBoxMarginPercent float64 `mapstructure:"bbox_margin_percent" yaml:"bbox_margin_percent" json:"bbox_margin_percent"`
	// MinContainmentRatio is the overlap-vote threshold.
	MinContainmentRatio float64 `mapstructure:"min_containment_ratio" yaml:"min_containment_ratio" json:"min_containment_ratio"`
	// TopSmallBBoxRatio is the share of smallest boxes kept for the
	// intersection fold.
	TopSmallBBoxRatio float64 `mapstructure:"top_small_bbox_ratio" yaml:"top_small_bbox_ratio" json:"top_small_bbox_ratio"`
	// YAlignThreshold is the largest odd/even vertical discrepancy, in
	// pixels, still treated as scan noise and averaged away.
	YAlignThreshold int `mapstructure:"y_align_threshold" yaml:"y_align_threshold" json:"y_align_threshold"`
}

// DefaultParams returns the documented default thresholds.
func DefaultParams() Params {
	return Params{
		MaxShiftTest:        300,
		MinMatchCount:       5,
		MinMatchRatio:       1.0 / 3.0,
		BBoxMarginPercent:   3.0,
		MinContainmentRatio: 0.70,
		TopSmallBBoxRatio:   0.30,
		YAlignThreshold:     350,
	}
}
