package record

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// encodeGIF quantizes each frame to the Plan9 palette and writes an
// infinitely looping animation. Frame delay is in hundredths of a second,
// floored at 1 so 60fps input still animates.
func encodeGIF(w io.Writer, frames []*image.RGBA, fps int) error {
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		b := frame.Bounds()
		p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		draw.Draw(p, p.Bounds(), frame, b.Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("record: encode gif: %w", err)
	}
	return nil
}

func encodeGIFFile(path string, frames []*image.RGBA, fps int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: create %s: %w", path, err)
	}
	defer f.Close()
	return encodeGIF(f, frames, fps)
}
