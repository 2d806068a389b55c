package record

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	watermarkSize    = 20
	watermarkMarginX = 150
	watermarkMarginY = 30
)

// watermarker stamps a text overlay onto frames. The face is built once
// and reused; frames flow through a single collector goroutine, so no
// locking is needed.
type watermarker struct {
	face font.Face
	text string
}

func newWatermarker(text string) (*watermarker, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("record: parse watermark font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    watermarkSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("record: build watermark face: %w", err)
	}
	return &watermarker{face: face, text: text}, nil
}

// stamp draws the text in white at the bottom-right corner, in place.
func (w *watermarker) stamp(frame *image.RGBA) {
	b := frame.Bounds()
	drawer := font.Drawer{
		Dst:  frame,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: w.face,
		Dot:  fixed.P(b.Max.X-watermarkMarginX, b.Max.Y-watermarkMarginY),
	}
	drawer.DrawString(w.text)
}
