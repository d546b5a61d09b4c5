package config

import (
	"github.com/MeKo-Tech/folio/internal/offset"
	"github.com/MeKo-Tech/folio/internal/pagenum"
)

// Config represents the complete configuration for the folio application.
// It supports loading from configuration files, environment variables,
// and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Page-number matching configuration
	Match MatchConfig `mapstructure:"match" yaml:"match" json:"match"`

	// Offset analysis configuration
	Offset OffsetConfig `mapstructure:"offset" yaml:"offset" json:"offset"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// MatchConfig contains page-number matching settings.
type MatchConfig struct {
	Language            string  `mapstructure:"language" yaml:"language" json:"language"`
	SearchRegionPercent float64 `mapstructure:"search_region_percent" yaml:"search_region_percent" json:"search_region_percent"`
	MinConfidence       float64 `mapstructure:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
	NumbersOnly         bool    `mapstructure:"numbers_only" yaml:"numbers_only" json:"numbers_only"`
}

// OffsetConfig contains offset analysis settings.
type OffsetConfig struct {
	MaxShiftTest        int     `mapstructure:"max_shift_test" yaml:"max_shift_test" json:"max_shift_test"`
	MinMatchCount       int     `mapstructure:"min_match_count" yaml:"min_match_count" json:"min_match_count"`
	BBoxMarginPercent   float64 `mapstructure:"bbox_margin_percent" yaml:"bbox_margin_percent" json:"bbox_margin_percent"`
	MinContainmentRatio float64 `mapstructure:"min_containment_ratio" yaml:"min_containment_ratio" json:"min_containment_ratio"`
	TopSmallBBoxRatio   float64 `mapstructure:"top_small_bbox_ratio" yaml:"top_small_bbox_ratio" json:"top_small_bbox_ratio"`
	YAlignThreshold     int     `mapstructure:"y_align_threshold" yaml:"y_align_threshold" json:"y_align_threshold"`
	ImageHeight         int     `mapstructure:"image_height" yaml:"image_height" json:"image_height"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format     string `mapstructure:"format" yaml:"format" json:"format"`
	File       string `mapstructure:"file" yaml:"file" json:"file"`
	OverlayDir string `mapstructure:"overlay_dir" yaml:"overlay_dir" json:"overlay_dir"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// ToMatchOptions converts the match section into matcher options.
func (c *Config) ToMatchOptions() pagenum.Options {
	opts := pagenum.OptionsForLanguage(c.Match.Language)
	if c.Match.SearchRegionPercent > 0 {
		opts = opts.WithSearchRegionPercent(c.Match.SearchRegionPercent)
	}
	if c.Match.MinConfidence > 0 {
		opts = opts.WithMinConfidence(c.Match.MinConfidence)
	}
	opts.NumbersOnly = c.Match.NumbersOnly
	return opts.Normalize()
}

// ToOffsetParams converts the offset section into analyzer parameters.
func (c *Config) ToOffsetParams() offset.Params {
	params := offset.DefaultParams()
	if c.Offset.MaxShiftTest > 0 {
		params.MaxShiftTest = c.Offset.MaxShiftTest
	}
	if c.Offset.MinMatchCount > 0 {
		params.MinMatchCount = c.Offset.MinMatchCount
	}
	if c.Offset.BBoxMarginPercent > 0 {
		params.BBoxMarginPercent = c.Offset.BBoxMarginPercent
	}
	if c.Offset.MinContainmentRatio > 0 {
		params.MinContainmentRatio = c.Offset.MinContainmentRatio
	}
	if c.Offset.TopSmallBBoxRatio > 0 {
		params.TopSmallBBoxRatio = c.Offset.TopSmallBBoxRatio
	}
	if c.Offset.YAlignThreshold > 0 {
		params.YAlignThreshold = c.Offset.YAlignThreshold
	}
	return params
}
