// Package capture grabs raw screen pixels through the native backends
// exposed by the screenshot library and wraps them with monitor metadata
// so downstream features (OCR, redaction, stitching) can reason about
// where on the virtual desktop a frame came from.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when no active display can be enumerated.
var ErrNoDisplay = errors.New("capture: no active display")

// Monitor describes one active display and its position in the virtual
// desktop coordinate space.
type Monitor struct {
	Index  int
	Bounds image.Rectangle
}

// Screenshot is a single captured frame. Bounds is the region of the
// virtual desktop the pixels came from; Monitor is the display index, or
// -1 for region and virtual-desktop captures.
type Screenshot struct {
	Image      *image.RGBA
	Monitor    int
	Bounds     image.Rectangle
	CapturedAt time.Time
}

// Width returns the pixel width of the captured frame.
func (s *Screenshot) Width() int { return s.Image.Bounds().Dx() }

// Height returns the pixel height of the captured frame.
func (s *Screenshot) Height() int { return s.Image.Bounds().Dy() }

// EncodePNG writes the frame as PNG.
func (s *Screenshot) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.Image); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the frame to a PNG file.
func (s *Screenshot) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return s.EncodePNG(f)
}

// Monitors enumerates the active displays.
func Monitors() ([]Monitor, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplay
	}
	monitors := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		monitors = append(monitors, Monitor{Index: i, Bounds: screenshot.GetDisplayBounds(i)})
	}
	return monitors, nil
}

// VirtualBounds returns the union of all display bounds.
func VirtualBounds() (image.Rectangle, error) {
	monitors, err := Monitors()
	if err != nil {
		return image.Rectangle{}, err
	}
	bounds := monitors[0].Bounds
	for _, m := range monitors[1:] {
		bounds = bounds.Union(m.Bounds)
	}
	return bounds, nil
}

// Display grabs a single monitor.
func Display(n int) (*Screenshot, error) {
	count := screenshot.NumActiveDisplays()
	if count == 0 {
		return nil, ErrNoDisplay
	}
	if n < 0 || n >= count {
		return nil, fmt.Errorf("capture: display %d out of range (have %d)", n, count)
	}
	bounds := screenshot.GetDisplayBounds(n)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", n, err)
	}
	return &Screenshot{Image: img, Monitor: n, Bounds: bounds, CapturedAt: time.Now()}, nil
}

// Primary grabs display 0.
func Primary() (*Screenshot, error) { return Display(0) }

// Region grabs an arbitrary rectangle in virtual-desktop coordinates.
func Region(r image.Rectangle) (*Screenshot, error) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("capture: empty region %v", r)
	}
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture region %v: %w", r, err)
	}
	return &Screenshot{Image: img, Monitor: -1, Bounds: r, CapturedAt: time.Now()}, nil
}

// All grabs every active display, in display-index order.
func All() ([]*Screenshot, error) {
	monitors, err := Monitors()
	if err != nil {
		return nil, err
	}
	shots := make([]*Screenshot, 0, len(monitors))
	for _, m := range monitors {
		shot, err := Display(m.Index)
		if err != nil {
			return nil, err
		}
		shots = append(shots, shot)
	}
	return shots, nil
}
