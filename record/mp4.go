package record

import (
	"fmt"
	"image"

	vidio "github.com/AlexEidt/Vidio"
)

// qualityFactor maps a tier to the encoder's 0..1 quality knob.
func qualityFactor(q Quality) float64 {
	switch q {
	case QualityLow:
		return 0.25
	case QualityMedium:
		return 0.5
	case QualityLossless:
		return 1
	default:
		return 0.8
	}
}

// encodeMP4 writes H.264 video through the ffmpeg-backed writer. All
// frames must share the first frame's dimensions.
func encodeMP4(path string, frames []*image.RGBA, fps int, quality Quality) error {
	b := frames[0].Bounds()
	w, h := b.Dx(), b.Dy()
	options := vidio.Options{
		FPS:     float64(fps),
		Codec:   "libx264",
		Quality: qualityFactor(quality),
	}
	writer, err := vidio.NewVideoWriter(path, w, h, &options)
	if err != nil {
		return fmt.Errorf("record: open video writer: %w", err)
	}
	defer writer.Close()

	for i, frame := range frames {
		fb := frame.Bounds()
		if fb.Dx() != w || fb.Dy() != h {
			return fmt.Errorf("record: frame %d is %dx%d, want %dx%d", i, fb.Dx(), fb.Dy(), w, h)
		}
		if err := writer.Write(frame.Pix); err != nil {
			return fmt.Errorf("record: write frame %d: %w", i, err)
		}
	}
	return nil
}
