// Package panorama stitches per-monitor captures into one wide image.
package panorama

import (
	"errors"
	"image"
	"image/draw"

	"github.com/wudi/shotkit/capture"
)

// ErrNoScreenshots is returned when there is nothing to stitch.
var ErrNoScreenshots = errors.New("panorama: at least one screenshot is required")

// Stitch concatenates the frames left to right in input order. The canvas
// height is the tallest frame; shorter frames leave black below them.
func Stitch(shots []*capture.Screenshot) (*image.NRGBA, error) {
	if len(shots) == 0 {
		return nil, ErrNoScreenshots
	}
	totalWidth := 0
	maxHeight := 0
	for _, s := range shots {
		totalWidth += s.Width()
		if s.Height() > maxHeight {
			maxHeight = s.Height()
		}
	}
	out := image.NewNRGBA(image.Rect(0, 0, totalWidth, maxHeight))
	x := 0
	for _, s := range shots {
		rect := image.Rect(x, 0, x+s.Width(), s.Height())
		draw.Draw(out, rect, s.Image, s.Image.Bounds().Min, draw.Src)
		x += s.Width()
	}
	return out, nil
}

// Compose places each frame at its virtual-desktop position, normalized
// so the top-left of the union is the origin. Unlike Stitch this renders
// stacked and mixed monitor arrangements faithfully.
func Compose(shots []*capture.Screenshot) (*image.NRGBA, error) {
	if len(shots) == 0 {
		return nil, ErrNoScreenshots
	}
	union := shots[0].Bounds
	for _, s := range shots[1:] {
		union = union.Union(s.Bounds)
	}
	out := image.NewNRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	for _, s := range shots {
		offset := s.Bounds.Min.Sub(union.Min)
		rect := image.Rectangle{Min: offset, Max: offset.Add(s.Bounds.Size())}
		draw.Draw(out, rect, s.Image, s.Image.Bounds().Min, draw.Src)
	}
	return out, nil
}
