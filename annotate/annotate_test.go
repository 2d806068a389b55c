package annotate

import (
	"image"
	"image/color"
	"testing"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func blank(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	return img
}

func TestRectangleStrokesEdgesOnly(t *testing.T) {
	img := blank(40, 40)
	out := Rectangle(img, image.Rect(10, 10, 30, 30), Style{Color: red, Thickness: 2})
	if out.NRGBAAt(10, 10) != red {
		t.Fatalf("corner not stroked")
	}
	if out.NRGBAAt(20, 11) != red {
		t.Fatalf("top edge not stroked")
	}
	if out.NRGBAAt(20, 20) != white {
		t.Fatalf("interior must stay untouched")
	}
	if img.NRGBAAt(10, 10) != white {
		t.Fatalf("input image modified")
	}
}

func TestArrowDrawsShaftAndHead(t *testing.T) {
	img := blank(60, 20)
	out := Arrow(img, image.Pt(5, 10), image.Pt(50, 10), Style{Color: red, Thickness: 2})
	if out.NRGBAAt(25, 10) != red {
		t.Fatalf("shaft missing")
	}
	// Head strokes sweep back and away from the tip on both sides.
	foundHead := false
	for _, y := range []int{6, 7, 13, 14} {
		if out.NRGBAAt(44, y) == red {
			foundHead = true
		}
	}
	if !foundHead {
		t.Fatalf("arrow head missing")
	}
}

func TestCircleOutlineAndFilled(t *testing.T) {
	img := blank(40, 40)
	out := Circle(img, image.Pt(20, 20), 10, Style{Color: red, Thickness: 2})
	if out.NRGBAAt(30, 20) != red {
		t.Fatalf("ring not stroked")
	}
	if out.NRGBAAt(20, 20) != white {
		t.Fatalf("outline circle must not fill center")
	}
	filled := Circle(img, image.Pt(20, 20), 10, Style{Color: red, Thickness: -1})
	if filled.NRGBAAt(20, 20) != red {
		t.Fatalf("negative thickness must fill")
	}
}

func TestHighlightBlends(t *testing.T) {
	img := blank(20, 20)
	out := Highlight(img, image.Rect(0, 0, 10, 10), color.NRGBA{R: 255, G: 255, A: 255}, 0.3)
	in := out.NRGBAAt(5, 5)
	if in == white {
		t.Fatalf("highlight did not change pixels")
	}
	if in.B >= 250 {
		t.Fatalf("yellow highlight should suppress blue, got %+v", in)
	}
	if out.NRGBAAt(15, 15) != white {
		t.Fatalf("outside region changed")
	}
}

func TestTextDrawsPixels(t *testing.T) {
	img := blank(120, 40)
	out, err := Text(img, "Hi", image.Pt(10, 25), 20, red)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	found := false
	for y := 0; y < 40 && !found; y++ {
		for x := 0; x < 120; x++ {
			if out.NRGBAAt(x, y) != white {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("no glyph pixels drawn")
	}
}

func TestClampingOutsideBounds(t *testing.T) {
	img := blank(10, 10)
	// Must not panic when shapes spill past the canvas.
	_ = Rectangle(img, image.Rect(-5, -5, 20, 20), DefaultStyle())
	_ = Circle(img, image.Pt(0, 0), 8, DefaultStyle())
	_ = Arrow(img, image.Pt(-3, -3), image.Pt(15, 15), DefaultStyle())
}
