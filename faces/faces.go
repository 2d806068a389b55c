// Package faces detects faces in captured frames and blurs them for
// privacy. Detection runs on pigo's pixel-intensity cascade, which keeps
// the feature pure Go: no OpenCV, no model download at runtime. The
// cascade file ships with pigo (cascade/facefinder) and is loaded from a
// configurable path.
package faces

import (
	"fmt"
	"image"
	"math"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// Detection is one detected face in image pixel coordinates.
type Detection struct {
	Rect       image.Rectangle
	Confidence float64
}

// Detector wraps an unpacked pigo cascade.
type Detector struct {
	classifier *pigo.Pigo
	quality    float32
	minSize    int
	maxSize    int
}

// Option configures a Detector.
type Option func(*Detector)

// WithQuality sets the cascade quality threshold. Higher values mean
// fewer, more certain detections. pigo's useful range is roughly 3..10.
func WithQuality(q float32) Option {
	return func(d *Detector) { d.quality = q }
}

// WithSizeRange bounds the face sizes the cascade scans for, in pixels.
func WithSizeRange(minSize, maxSize int) Option {
	return func(d *Detector) {
		d.minSize = minSize
		d.maxSize = maxSize
	}
}

// NewDetector loads and unpacks the cascade file at path.
func NewDetector(cascadePath string, opts ...Option) (*Detector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("faces: read cascade: %w", err)
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("faces: unpack cascade: %w", err)
	}
	d := &Detector{classifier: classifier, quality: 5.0, minSize: 20, maxSize: 1000}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Detect returns the faces found in the image, clustered and filtered by
// the quality threshold.
func (d *Detector) Detect(img image.Image) []Detection {
	src := pigo.ImgToNRGBA(img)
	pixels := pigo.RgbToGrayscale(src)
	cols := src.Bounds().Dx()
	rows := src.Bounds().Dy()

	params := pigo.CascadeParams{
		MinSize:     d.minSize,
		MaxSize:     d.maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	results := make([]Detection, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.quality {
			continue
		}
		results = append(results, Detection{
			Rect:       detectionRect(det.Col, det.Row, det.Scale),
			Confidence: float64(det.Q),
		})
	}
	return results
}

// BlurFaces detects faces and blurs each region. The input image is not
// modified; if no faces are found the clone is returned untouched.
func (d *Detector) BlurFaces(img image.Image, strength, expandRatio float64) (*image.NRGBA, int) {
	dets := d.Detect(img)
	return Blur(img, dets, strength, expandRatio), len(dets)
}

// Blur gaussian-blurs the given detections on a copy of img. Each box is
// grown by expandRatio around its center so hairlines and chins are
// covered, then clamped to the image bounds.
func Blur(img image.Image, dets []Detection, strength, expandRatio float64) *image.NRGBA {
	out := imaging.Clone(img)
	if strength <= 0 {
		strength = 30
	}
	sigma := math.Max(1, strength/3)
	for _, det := range dets {
		rect := Expand(det.Rect, expandRatio).Intersect(out.Bounds())
		if rect.Empty() {
			continue
		}
		region := imaging.Crop(out, rect)
		blurred := imaging.Blur(region, sigma)
		out = imaging.Paste(out, blurred, rect.Min)
	}
	return out
}

// Expand grows a rectangle by ratio around its center. Ratios at or below
// zero leave the rectangle unchanged.
func Expand(r image.Rectangle, ratio float64) image.Rectangle {
	if ratio <= 0 || ratio == 1 {
		return r
	}
	w := float64(r.Dx()) * ratio
	h := float64(r.Dy()) * ratio
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	return image.Rect(
		int(math.Round(cx-w/2)),
		int(math.Round(cy-h/2)),
		int(math.Round(cx+w/2)),
		int(math.Round(cy+h/2)),
	)
}

// detectionRect converts pigo's center+scale representation to a
// rectangle.
func detectionRect(col, row, scale int) image.Rectangle {
	half := scale / 2
	return image.Rect(col-half, row-half, col-half+scale, row-half+scale)
}
