package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/MeKo-Tech/folio/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect <detections.json>",
	Short: "Summarize detections: printing pattern, gaps, duplicates, ordering",
	Long: `Summarize a book's page-number detections: the inferred printing
position pattern, odd/even horizontal averages, missing and duplicated
printed numbers, roman-numbered front matter, and whether the detected
numbers are in strictly ascending order.

Examples:
  folio inspect detections.json
  folio inspect detections.json --format json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindInspectFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format := cfg.Output.Format
		validFormats := []string{outputFormatText, outputFormatJSON}
		if !containsString(validFormats, format) {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		detections, err := report.ReadDetectionsFile(args[0])
		if err != nil {
			return err
		}
		slog.Debug("loaded detections", "file", args[0], "count", len(detections))

		analysis := pagenum.Analyze(detections)
		orderValid := pagenum.ValidateOrder(detections)

		output, err := report.FormatInspection(analysis, orderValid, format)
		if err != nil {
			return err
		}
		return writeResult(cmd, output, cfg.Output.File)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	inspectCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
}

// bindInspectFlags binds the command's flags to viper configuration keys.
func bindInspectFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
}
