package faces

import (
	"image"
	"image/color"
	"testing"
)

func TestNewDetectorMissingCascade(t *testing.T) {
	if _, err := NewDetector("/nonexistent/facefinder"); err == nil {
		t.Fatalf("expected error for missing cascade file")
	}
}

func TestExpand(t *testing.T) {
	r := image.Rect(10, 10, 30, 30)
	grown := Expand(r, 1.5)
	if grown.Dx() != 30 || grown.Dy() != 30 {
		t.Fatalf("expected 30x30, got %v", grown)
	}
	if grown.Min.X != 5 || grown.Min.Y != 5 {
		t.Fatalf("expansion not centered: %v", grown)
	}
	if got := Expand(r, 0); got != r {
		t.Fatalf("zero ratio must be a no-op, got %v", got)
	}
	if got := Expand(r, 1); got != r {
		t.Fatalf("ratio 1 must be a no-op, got %v", got)
	}
}

func TestDetectionRect(t *testing.T) {
	r := detectionRect(50, 40, 20)
	if r.Dx() != 20 || r.Dy() != 20 {
		t.Fatalf("expected 20x20, got %v", r)
	}
	center := image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	if center.X != 50 || center.Y != 40 {
		t.Fatalf("rect not centered on detection: %v", center)
	}
}

func TestBlurModifiesDetectedRegionOnly(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			c := color.NRGBA{A: 255}
			// Checkerboard inside the face box so blur visibly changes it.
			if x < 30 && y < 30 && (x+y)%2 == 0 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	dets := []Detection{{Rect: image.Rect(0, 0, 30, 30), Confidence: 9}}
	out := Blur(img, dets, 30, 1.0)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	changed := false
	for y := 2; y < 28 && !changed; y++ {
		for x := 2; x < 28; x++ {
			if out.NRGBAAt(x, y) != img.NRGBAAt(x, y) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Fatalf("face region was not blurred")
	}
	if out.NRGBAAt(50, 50) != img.NRGBAAt(50, 50) {
		t.Fatalf("pixels outside the detection were modified")
	}
}

func TestBlurNoDetections(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	out := Blur(img, nil, 30, 1.2)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if out.NRGBAAt(x, y) != img.NRGBAAt(x, y) {
				t.Fatalf("image changed with no detections")
			}
		}
	}
}
