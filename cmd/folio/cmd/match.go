package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/MeKo-Tech/folio/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFormatJSON = "json"
	outputFormatCSV  = "csv"
	outputFormatText = "text"
	outputFormatYAML = "yaml"
)

// matchCmd represents the match command.
var matchCmd = &cobra.Command{
	Use:   "match <candidates.json>",
	Short: "Match OCR candidates against expected page numbers",
	Long: `Match per-page OCR text candidates against sequential expected page
numbers using the staged fallback matcher.

The input file holds one candidate list per physical page, each with the
OCR text, bounding box, and confidence. Pages are matched in parallel.

Examples:
  folio match candidates.json
  folio match candidates.json --start 5 --format json
  folio match candidates.json --output matches.csv --format csv`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PreRun: func(cmd *cobra.Command, args []string) {
		bindMatchFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format := cfg.Output.Format
		validFormats := []string{outputFormatText, outputFormatJSON, outputFormatCSV}
		if !containsString(validFormats, format) {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		start, err := cmd.Flags().GetInt("start")
		if err != nil {
			return err
		}
		if start < 1 {
			return fmt.Errorf("invalid start page number: %d (must be at least 1)", start)
		}

		book, regions, err := report.ReadCandidatesFile(args[0])
		if err != nil {
			return err
		}
		slog.Debug("loaded candidates", "file", args[0], "pages", len(book))

		matches := pagenum.FindPageNumbersBatchContext(
			cmd.Context(), book, start, regions,
			pagenum.BatchConfig{MaxWorkers: cfg.Batch.Workers},
		)

		stats := pagenum.StatsFromMatches(matches)
		slog.Debug("matching complete",
			"pages", stats.Total,
			"exact", stats.Stage1Exact,
			"not_found", stats.NotFound,
			"detection_rate", stats.DetectionRate(),
		)

		output, err := report.FormatMatches(matches, format)
		if err != nil {
			return err
		}
		return writeResult(cmd, output, cfg.Output.File)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Int("start", 1, "printed page number expected on the first page")
	matchCmd.Flags().StringP("format", "f", "text", "output format (text, json, csv)")
	matchCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	matchCmd.Flags().Int("workers", runtime.NumCPU(), "number of parallel workers")
}

// bindMatchFlags binds the command's flags to viper configuration keys.
// Binding happens at run time so commands sharing keys do not clobber
// each other's flags.
func bindMatchFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))
}

// writeResult writes command output to a file when one is configured,
// otherwise to the command's stdout.
func writeResult(cmd *cobra.Command, content, outputFile string) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
		}
		slog.Debug("wrote output", "file", outputFile, "bytes", len(content))
		return nil
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
	return err
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
