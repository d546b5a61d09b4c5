package cmd

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/MeKo-Tech/folio/internal/render"
	"github.com/MeKo-Tech/folio/internal/report"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

const (
	defaultOverlayWidth  = 2480
	defaultOverlayHeight = 3508
)

// overlayCmd represents the overlay command.
var overlayCmd = &cobra.Command{
	Use:   "overlay <candidates.json>",
	Short: "Render candidate boxes and the matched number onto a page image",
	Long: `Render a visual overlay for one page: the candidate bounding boxes, the
search region, and a crosshair at the matched page number's center.

Without --image a blank page canvas is used, sized for a 300 DPI A4 scan.

Examples:
  folio overlay candidates.json --page 3 --out page3.png
  folio overlay candidates.json --page 0 --image scans/page0001.png --out overlay.png`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		pageIndex, err := cmd.Flags().GetInt("page")
		if err != nil {
			return err
		}
		imagePath, err := cmd.Flags().GetString("image")
		if err != nil {
			return err
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		start, err := cmd.Flags().GetInt("start")
		if err != nil {
			return err
		}

		book, regions, err := report.ReadCandidatesFile(args[0])
		if err != nil {
			return err
		}
		if pageIndex < 0 || pageIndex >= len(book) {
			return fmt.Errorf("page index %d out of range (file has %d pages)", pageIndex, len(book))
		}

		region := pagenum.DefaultSearchRegion
		if pageIndex < len(regions) {
			region = regions[pageIndex]
		}

		var page image.Image
		if imagePath != "" {
			page, err = imaging.Open(imagePath)
			if err != nil {
				return fmt.Errorf("failed to open page image %s: %w", imagePath, err)
			}
		} else {
			page = render.BlankPage(defaultOverlayWidth, defaultOverlayHeight)
		}

		candidates := book[pageIndex]
		var ref *geometry.Point
		if m := pagenum.FindPageNumberWithFallback(candidates, start+pageIndex, region); m != nil {
			center := m.Candidate.BBox.Center()
			ref = &center
			slog.Debug("matched page number",
				"page", pageIndex,
				"stage", m.Stage.String(),
				"text", m.Candidate.Text,
			)
		}

		out := render.DrawPageOverlay(page, candidates, region, ref, render.DefaultOptions())
		if err := render.SavePNG(out, outPath); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote overlay for page %d to %s\n", pageIndex, outPath)
		return err
	},
}

func init() {
	rootCmd.AddCommand(overlayCmd)

	overlayCmd.Flags().Int("page", 0, "zero-based page index to render")
	overlayCmd.Flags().String("image", "", "source page image (blank canvas if omitted)")
	overlayCmd.Flags().String("out", "overlay.png", "output PNG path")
	overlayCmd.Flags().Int("start", 1, "printed page number expected on the first page")
}
