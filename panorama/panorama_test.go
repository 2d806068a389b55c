package panorama

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/wudi/shotkit/capture"
)

func shotAt(bounds image.Rectangle, c color.RGBA) *capture.Screenshot {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return &capture.Screenshot{Image: img, Bounds: bounds}
}

func TestStitchEmpty(t *testing.T) {
	if _, err := Stitch(nil); !errors.Is(err, ErrNoScreenshots) {
		t.Fatalf("expected ErrNoScreenshots, got %v", err)
	}
}

func TestStitchHorizontal(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	left := shotAt(image.Rect(0, 0, 10, 20), red)
	right := shotAt(image.Rect(10, 0, 18, 12), blue)

	out, err := Stitch([]*capture.Screenshot{left, right})
	if err != nil {
		t.Fatalf("Stitch() error = %v", err)
	}
	if out.Bounds().Dx() != 18 || out.Bounds().Dy() != 20 {
		t.Fatalf("got %v, want 18x20", out.Bounds())
	}
	if got := out.NRGBAAt(5, 5); got.R != 255 {
		t.Fatalf("left half wrong: %+v", got)
	}
	if got := out.NRGBAAt(14, 5); got.B != 255 {
		t.Fatalf("right half wrong: %+v", got)
	}
	// Below the shorter frame stays black.
	if got := out.NRGBAAt(14, 15); got.R != 0 || got.B != 0 {
		t.Fatalf("fill area wrong: %+v", got)
	}
}

func TestComposeUsesMonitorGeometry(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	// Vertically stacked monitors, secondary above the primary with a
	// negative origin the way X11 reports them.
	top := shotAt(image.Rect(0, -10, 20, 0), red)
	bottom := shotAt(image.Rect(0, 0, 20, 10), blue)

	out, err := Compose([]*capture.Screenshot{bottom, top})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
		t.Fatalf("got %v, want 20x20", out.Bounds())
	}
	if got := out.NRGBAAt(5, 5); got.R != 255 {
		t.Fatalf("top monitor misplaced: %+v", got)
	}
	if got := out.NRGBAAt(5, 15); got.B != 255 {
		t.Fatalf("bottom monitor misplaced: %+v", got)
	}
}
