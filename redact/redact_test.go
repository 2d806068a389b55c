package redact

import (
	"image"
	"image/color"
	"testing"

	"github.com/wudi/shotkit/ocr"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestNewRedactorRejectsUnknownMode(t *testing.T) {
	if _, err := NewRedactor("smudge"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestMatchDefaultPatterns(t *testing.T) {
	r, err := NewRedactor(ModeBlock)
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}
	cases := []struct {
		text string
		want bool
	}{
		{"alice@example.com", true},
		{"555-123-4567", true},
		{"4111 1111 1111 1111", true},
		{"123-45-6789", true},
		{"hello", false},
		{"12-34", false},
	}
	for _, tc := range cases {
		if got := r.Match(tc.text) != ""; got != tc.want {
			t.Fatalf("Match(%q) matched=%v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestWithPatternTypesUnknownName(t *testing.T) {
	if _, err := NewRedactor(ModeBlur, WithPatternTypes("email", "nope")); err == nil {
		t.Fatalf("expected error for unknown pattern type")
	}
}

func TestWithTemplate(t *testing.T) {
	r, err := NewRedactor(ModeBlock, WithTemplate("corporate"))
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}
	if r.Match("EMP12345") == "" {
		t.Fatalf("corporate template must match employee ids")
	}
	if r.Match("alice@example.com") != "" {
		t.Fatalf("template must replace the default pattern set")
	}
	if _, err := NewRedactor(ModeBlock, WithTemplate("nonexistent")); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestApplyBlocksMatchedWords(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	img := uniformImage(40, 20, white)
	words := []ocr.TextWord{
		{Text: "alice@example.com", Bounds: ocr.Region{X: 2, Y: 2, Width: 10, Height: 6}},
		{Text: "harmless", Bounds: ocr.Region{X: 20, Y: 2, Width: 10, Height: 6}},
	}
	r, err := NewRedactor(ModeBlock)
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}
	out, count := r.Apply(img, words)
	if count != 1 {
		t.Fatalf("redacted %d regions, want 1", count)
	}
	if got := out.NRGBAAt(5, 4); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("matched region not blocked: %+v", got)
	}
	if got := out.NRGBAAt(25, 4); got != white {
		t.Fatalf("unmatched region modified: %+v", got)
	}
	if got := img.NRGBAAt(5, 4); got != white {
		t.Fatalf("input image was modified: %+v", got)
	}
}

func TestApplyClampsOutOfBoundsRegions(t *testing.T) {
	img := uniformImage(10, 10, color.NRGBA{R: 255, A: 255})
	words := []ocr.TextWord{
		{Text: "123-45-6789", Bounds: ocr.Region{X: 8, Y: 8, Width: 50, Height: 50}},
		{Text: "123-45-6789", Bounds: ocr.Region{X: 100, Y: 100, Width: 5, Height: 5}},
	}
	r, err := NewRedactor(ModeBlock)
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}
	_, count := r.Apply(img, words)
	if count != 1 {
		t.Fatalf("redacted %d regions, want 1 (fully out-of-bounds box skipped)", count)
	}
}

func TestApplyRegionsPixelate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), A: 255})
		}
	}
	r, err := NewRedactor(ModePixelate, WithStrength(8))
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}
	out := r.ApplyRegions(img, []image.Rectangle{image.Rect(0, 0, 32, 32)})
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	// Pixelation collapses 8x8 cells to one color.
	if a, b := out.NRGBAAt(1, 1), out.NRGBAAt(6, 6); a != b {
		t.Fatalf("pixelate did not flatten cell: %+v vs %+v", a, b)
	}
}

func TestGenerateModeStripes(t *testing.T) {
	img := uniformImage(12, 12, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	r, err := NewRedactor(ModeGenerate)
	if err != nil {
		t.Fatalf("NewRedactor() error = %v", err)
	}
	out := r.ApplyRegions(img, []image.Rectangle{image.Rect(0, 0, 12, 12)})
	if got := out.NRGBAAt(0, 0); got.R != 70 {
		t.Fatalf("expected stripe row at y=0, got %+v", got)
	}
	if got := out.NRGBAAt(0, 2); got.R != 50 {
		t.Fatalf("expected base row at y=2, got %+v", got)
	}
}
