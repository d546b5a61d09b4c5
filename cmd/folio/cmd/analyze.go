package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/MeKo-Tech/folio/internal/offset"
	"github.com/MeKo-Tech/folio/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <detections.json>",
	Short: "Analyze page numbering shift and per-page offsets",
	Long: `Analyze detected page numbers across a book to find the shift between
physical page order and printed numbering, and compute per-page position
offsets relative to the odd/even group reference positions.

Examples:
  folio analyze detections.json
  folio analyze detections.json --format yaml
  folio analyze detections.json --total-pages 240 --format json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindAnalyzeFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format := cfg.Output.Format
		validFormats := []string{outputFormatText, outputFormatJSON, outputFormatYAML}
		if !containsString(validFormats, format) {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		totalPages, err := cmd.Flags().GetInt("total-pages")
		if err != nil {
			return err
		}
		if totalPages < 0 {
			return fmt.Errorf("invalid total pages: %d (must not be negative)", totalPages)
		}

		detections, err := report.ReadDetectionsFile(args[0])
		if err != nil {
			return err
		}
		slog.Debug("loaded detections", "file", args[0], "count", len(detections))

		analysis := offset.AnalyzeOffsetsWithParams(detections, cfg.Offset.ImageHeight, cfg.ToOffsetParams())
		if totalPages > 0 {
			offset.InterpolateMissingOffsets(&analysis, totalPages)
		}

		slog.Debug("analysis complete",
			"shift", analysis.PageNumberShift,
			"matches", analysis.MatchCount,
			"confidence", analysis.Confidence,
		)

		output, err := report.FormatAnalysis(&analysis, format)
		if err != nil {
			return err
		}
		return writeResult(cmd, output, cfg.Output.File)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Int("total-pages", 0, "total page count for dense offset interpolation (0 = matched pages only)")
	analyzeCmd.Flags().Int("image-height", 0, "page image height in pixels")
	analyzeCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	analyzeCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	analyzeCmd.Flags().Int("max-shift", offset.DefaultParams().MaxShiftTest, "maximum absolute numbering shift to test")
}

// bindAnalyzeFlags binds the command's flags to viper configuration keys.
func bindAnalyzeFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("offset.image_height", cmd.Flags().Lookup("image-height"))
	_ = viper.BindPFlag("offset.max_shift_test", cmd.Flags().Lookup("max-shift"))
	_ = viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
}
