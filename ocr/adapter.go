package ocr

import (
	"bytes"
	"fmt"

	"github.com/wudi/shotkit/capture"
)

// InputOption mutates an OCR input generated from a captured frame.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithRegion sets the recognition region on the OCR input.
func WithRegion(region Region) InputOption {
	return func(in *Input) {
		if region.IsEmpty() {
			in.Region = nil
			return
		}
		in.Region = &region
	}
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// FromScreenshot converts a captured frame into an OCR input using PNG
// encoding. The generated ID combines the monitor index and capture time
// to simplify correlation with downstream results.
func FromScreenshot(shot *capture.Screenshot, opts ...InputOption) (Input, error) {
	var buf bytes.Buffer
	if err := shot.EncodePNG(&buf); err != nil {
		return Input{}, fmt.Errorf("encode screenshot: %w", err)
	}
	in := Input{
		ID:           fmt.Sprintf("monitor-%d-%d", shot.Monitor, shot.CapturedAt.UnixNano()),
		Image:        buf.Bytes(),
		Format:       ImageFormatPNG,
		MonitorIndex: shot.Monitor,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}
