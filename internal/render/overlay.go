package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/pagenum"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls how the overlay is drawn.
type Options struct {
	BoxColor    color.Color
	RegionColor color.Color
	RefColor    color.Color
	Thickness   int
	DrawLabels  bool
}

// DefaultOptions returns overlay options with readable defaults.
func DefaultOptions() Options {
	return Options{
		BoxColor:    color.RGBA{255, 0, 0, 255},
		RegionColor: color.RGBA{0, 0, 255, 255},
		RefColor:    color.RGBA{0, 160, 0, 255},
		Thickness:   2,
		DrawLabels:  true,
	}
}

// DrawPageOverlay draws candidate boxes, the search region, and the group
// reference point over a copy of the page image. A nil reference point is
// skipped.
func DrawPageOverlay(
	img image.Image,
	candidates []pagenum.Candidate,
	region geometry.Rectangle,
	ref *geometry.Point,
	opts Options,
) *image.RGBA {
	if img == nil {
		return nil
	}
	if opts.Thickness <= 0 {
		opts.Thickness = 1
	}
	if opts.BoxColor == nil {
		opts.BoxColor = color.RGBA{255, 0, 0, 255}
	}
	if opts.RegionColor == nil {
		opts.RegionColor = color.RGBA{0, 0, 255, 255}
	}
	if opts.RefColor == nil {
		opts.RefColor = color.RGBA{0, 160, 0, 255}
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}

	drawRect(dst, toImageRect(region), opts.RegionColor, opts.Thickness)
	for _, c := range candidates {
		drawRect(dst, toImageRect(c.BBox), opts.BoxColor, opts.Thickness)
		if opts.DrawLabels && c.Text != "" {
			drawLabel(dst, c.Text, c.BBox.X, c.BBox.Y-4, opts.BoxColor)
		}
	}
	if ref != nil {
		drawCross(dst, *ref, 12, opts.RefColor, opts.Thickness)
	}
	return dst
}

func toImageRect(r geometry.Rectangle) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// drawRect outlines rect with the given thickness, clipped to the image.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thickness int) {
	for t := 0; t < thickness; t++ {
		r := rect.Inset(-t)
		for x := r.Min.X; x <= r.Max.X; x++ {
			setClipped(dst, x, r.Min.Y, col)
			setClipped(dst, x, r.Max.Y, col)
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			setClipped(dst, r.Min.X, y, col)
			setClipped(dst, r.Max.X, y, col)
		}
	}
}

// drawCross marks a point with a crosshair of the given half-length.
func drawCross(dst *image.RGBA, p geometry.Point, arm int, col color.Color, thickness int) {
	for t := 0; t < thickness; t++ {
		for d := -arm; d <= arm; d++ {
			setClipped(dst, p.X+d, p.Y+t, col)
			setClipped(dst, p.X+t, p.Y+d, col)
		}
	}
}

func setClipped(dst *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.Set(x, y, col)
	}
}

// drawLabel renders small text at the given baseline position.
func drawLabel(dst *image.RGBA, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// SavePNG writes the image to disk as PNG.
func SavePNG(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save overlay image: %w", err)
	}
	return nil
}

// BlankPage returns a white page image of the given size, used when the
// caller has detections but no source scan at hand.
func BlankPage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	return img
}
