package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/kbinani/screenshot"
)

func testShot(w, h int, c color.RGBA) *Screenshot {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return &Screenshot{Image: img, Monitor: 0, Bounds: image.Rect(0, 0, w, h), CapturedAt: time.Now()}
}

func TestRegionRejectsEmptyRect(t *testing.T) {
	if _, err := Region(image.Rect(10, 10, 10, 50)); err == nil {
		t.Fatalf("expected error for zero-width region")
	}
	if _, err := Region(image.Rect(0, 0, -5, 10)); err == nil {
		t.Fatalf("expected error for negative region")
	}
}

func TestScreenshotEncodePNG(t *testing.T) {
	shot := testShot(4, 3, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := shot.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 4 || got.Dy() != 3 {
		t.Fatalf("unexpected bounds: %v", got)
	}
}

func TestDetectorReportsChanges(t *testing.T) {
	var d Detector
	red := testShot(8, 8, color.RGBA{R: 255, A: 255})
	if !d.Changed(red) {
		t.Fatalf("first frame must report changed")
	}
	if d.Changed(red) {
		t.Fatalf("identical frame must not report changed")
	}
	blue := testShot(8, 8, color.RGBA{B: 255, A: 255})
	if !d.Changed(blue) {
		t.Fatalf("different frame must report changed")
	}
	d.Reset()
	if !d.Changed(blue) {
		t.Fatalf("frame after reset must report changed")
	}
}

func TestDetectorSeesChangesDeepInLargeFrames(t *testing.T) {
	var d Detector
	base := testShot(1920, 1080, color.RGBA{R: 40, G: 40, B: 40, A: 255})
	if !d.Changed(base) {
		t.Fatalf("first frame must report changed")
	}

	// A dialog-sized change far below the top row.
	next := testShot(1920, 1080, color.RGBA{R: 40, G: 40, B: 40, A: 255})
	for y := 500; y < 600; y++ {
		for x := 800; x < 1100; x++ {
			next.Image.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	if !d.Changed(next) {
		t.Fatalf("a 300x100 change at y=500 must report changed")
	}

	// A single-pixel change in the bottom-right corner.
	last := testShot(1920, 1080, color.RGBA{R: 40, G: 40, B: 40, A: 255})
	for y := 500; y < 600; y++ {
		for x := 800; x < 1100; x++ {
			last.Image.SetRGBA(x, y, color.RGBA{R: 250, G: 250, B: 250, A: 255})
		}
	}
	last.Image.SetRGBA(1919, 1079, color.RGBA{R: 255, A: 255})
	if !d.Changed(last) {
		t.Fatalf("a bottom-right pixel change must report changed")
	}
	if d.Changed(last) {
		t.Fatalf("identical large frame must not report changed")
	}
}

func TestDisplayOutOfRange(t *testing.T) {
	if screenshot.NumActiveDisplays() == 0 {
		t.Skip("no active display")
	}
	if _, err := Display(screenshot.NumActiveDisplays()); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestMonitorsMatchDisplays(t *testing.T) {
	if screenshot.NumActiveDisplays() == 0 {
		t.Skip("no active display")
	}
	monitors, err := Monitors()
	if err != nil {
		t.Fatalf("Monitors() error = %v", err)
	}
	if len(monitors) != screenshot.NumActiveDisplays() {
		t.Fatalf("monitor count mismatch: %d", len(monitors))
	}
	for i, m := range monitors {
		if m.Index != i {
			t.Fatalf("monitor %d has index %d", i, m.Index)
		}
		if m.Bounds.Empty() {
			t.Fatalf("monitor %d has empty bounds", i)
		}
	}
}
