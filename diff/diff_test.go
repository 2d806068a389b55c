package diff

import (
	"image"
	"image/color"
	"testing"
)

func grayImage(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func paint(img *image.NRGBA, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
}

func TestRegionsSizeMismatch(t *testing.T) {
	if _, err := Regions(grayImage(10, 10, 0), grayImage(20, 10, 0), 0.1); err == nil {
		t.Fatalf("expected size mismatch error")
	}
}

func TestRegionsThresholdValidation(t *testing.T) {
	img := grayImage(10, 10, 0)
	if _, err := Regions(img, img, 1.5); err == nil {
		t.Fatalf("expected threshold error")
	}
}

func TestRegionsNoChange(t *testing.T) {
	prev := grayImage(64, 64, 100)
	cur := grayImage(64, 64, 100)
	regions, err := Regions(prev, cur, 0.1)
	if err != nil {
		t.Fatalf("Regions() error = %v", err)
	}
	if len(regions) != 0 {
		t.Fatalf("expected no regions, got %v", regions)
	}
}

func TestRegionsFindsChangedBlock(t *testing.T) {
	prev := grayImage(64, 64, 20)
	cur := grayImage(64, 64, 20)
	changed := image.Rect(16, 16, 40, 32)
	paint(cur, changed, 220)

	regions, err := Regions(prev, cur, 0.1)
	if err != nil {
		t.Fatalf("Regions() error = %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %v", regions)
	}
	if regions[0] != changed {
		t.Fatalf("region %v, want %v", regions[0], changed)
	}
}

func TestRegionsDropsSmallFlicker(t *testing.T) {
	prev := grayImage(64, 64, 20)
	cur := grayImage(64, 64, 20)
	// 5x5 = 25px, under the 100px floor.
	paint(cur, image.Rect(10, 10, 15, 15), 220)

	regions, err := Regions(prev, cur, 0.1)
	if err != nil {
		t.Fatalf("Regions() error = %v", err)
	}
	if len(regions) != 0 {
		t.Fatalf("small change must be dropped, got %v", regions)
	}
}

func TestRegionsSeparatesDistantChanges(t *testing.T) {
	prev := grayImage(128, 128, 20)
	cur := grayImage(128, 128, 20)
	paint(cur, image.Rect(0, 0, 16, 16), 220)
	paint(cur, image.Rect(100, 100, 120, 120), 220)

	regions, err := Regions(prev, cur, 0.1)
	if err != nil {
		t.Fatalf("Regions() error = %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %v", regions)
	}
}

func TestAnnotateDrawsBorders(t *testing.T) {
	cur := grayImage(64, 64, 200)
	out := Annotate(cur, []image.Rectangle{image.Rect(8, 8, 24, 24)})
	border := out.NRGBAAt(8, 8)
	if border.R != 255 || border.G != 0 {
		t.Fatalf("border not red: %+v", border)
	}
	inside := out.NRGBAAt(16, 16)
	if inside.R != 200 {
		t.Fatalf("interior repainted: %+v", inside)
	}
}

func TestDistanceIdenticalAndDifferent(t *testing.T) {
	a := grayImage(64, 64, 10)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x/8+y/8)%2 == 0 {
				a.SetNRGBA(x, y, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
			}
		}
	}
	d, err := Distance(a, a)
	if err != nil {
		t.Fatalf("Distance() error = %v", err)
	}
	if d != 0 {
		t.Fatalf("identical images must have distance 0, got %d", d)
	}
	ok, err := Similar(a, a, 0)
	if err != nil || !ok {
		t.Fatalf("Similar(a, a) = %v, %v", ok, err)
	}
}
