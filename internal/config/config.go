package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/MeKo-Tech/folio/internal/offset"
	"github.com/MeKo-Tech/folio/internal/pagenum"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	params := offset.DefaultParams()
	opts := pagenum.DefaultOptions()
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Match: MatchConfig{
			Language:            "default",
			SearchRegionPercent: opts.SearchRegionPercent,
			MinConfidence:       opts.MinConfidence,
			NumbersOnly:         opts.NumbersOnly,
		},
		Offset: OffsetConfig{
			MaxShiftTest:        params.MaxShiftTest,
			MinMatchCount:       params.MinMatchCount,
			BBoxMarginPercent:   params.BBoxMarginPercent,
			MinContainmentRatio: params.MinContainmentRatio,
			TopSmallBBoxRatio:   params.TopSmallBBoxRatio,
			YAlignThreshold:     params.YAlignThreshold,
			ImageHeight:         0,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Batch: BatchConfig{
			Workers: runtime.NumCPU(),
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "csv", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	validLanguages := []string{"", "default", "japanese", "jpn", "english", "eng", "strict", "jpn+eng"}
	if !contains(validLanguages, c.Match.Language) {
		return fmt.Errorf("invalid match language: %s", c.Match.Language)
	}

	if c.Match.SearchRegionPercent < 0 || c.Match.SearchRegionPercent > 100 {
		return fmt.Errorf("invalid search region percent: %g (must be between 0 and 100)", c.Match.SearchRegionPercent)
	}
	if c.Match.MinConfidence < 0 || c.Match.MinConfidence > 100 {
		return fmt.Errorf("invalid min confidence: %g (must be between 0 and 100)", c.Match.MinConfidence)
	}

	if c.Offset.MaxShiftTest < 0 {
		return fmt.Errorf("invalid max shift test: %d (must not be negative)", c.Offset.MaxShiftTest)
	}
	if c.Offset.MinMatchCount < 0 {
		return fmt.Errorf("invalid min match count: %d (must not be negative)", c.Offset.MinMatchCount)
	}
	if c.Offset.MinContainmentRatio < 0 || c.Offset.MinContainmentRatio > 1 {
		return fmt.Errorf("invalid min containment ratio: %g (must be between 0 and 1)", c.Offset.MinContainmentRatio)
	}
	if c.Offset.TopSmallBBoxRatio < 0 || c.Offset.TopSmallBBoxRatio > 1 {
		return fmt.Errorf("invalid top small bbox ratio: %g (must be between 0 and 1)", c.Offset.TopSmallBBoxRatio)
	}
	if c.Offset.ImageHeight < 0 {
		return fmt.Errorf("invalid image height: %d (must not be negative)", c.Offset.ImageHeight)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
