// Package redact obscures regions of a screenshot presumed to contain
// sensitive text. Matching is driven by regular expressions over OCR word
// results; obscuring is done by blur, pixelation, or solid fill.
package redact

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"regexp"

	"github.com/disintegration/imaging"
	"github.com/wudi/shotkit/ocr"
)

// Mode selects how a matched region is obscured.
type Mode string

const (
	ModeBlur     Mode = "blur"
	ModePixelate Mode = "pixelate"
	ModeBlock    Mode = "block"
	ModeGenerate Mode = "generate"
)

var validModes = map[Mode]bool{ModeBlur: true, ModePixelate: true, ModeBlock: true, ModeGenerate: true}

// Redactor applies a redaction mode to the bounds of OCR words whose text
// matches any of the configured patterns.
type Redactor struct {
	mode     Mode
	strength float64
	patterns map[string]*regexp.Regexp
}

// Option configures a Redactor.
type Option func(*Redactor) error

// WithStrength sets the blur kernel size / pixel block size.
func WithStrength(strength float64) Option {
	return func(r *Redactor) error {
		if strength <= 0 {
			return fmt.Errorf("redact: strength must be positive, got %g", strength)
		}
		r.strength = strength
		return nil
	}
}

// WithPatterns adds custom named regex patterns.
func WithPatterns(patterns map[string]string) Option {
	return func(r *Redactor) error {
		return r.compileInto(patterns)
	}
}

// WithPatternTypes restricts the built-in patterns to the named subset.
// Unknown names are an error so typos do not silently disable redaction.
func WithPatternTypes(names ...string) Option {
	return func(r *Redactor) error {
		selected := make(map[string]string, len(names))
		for _, name := range names {
			expr, ok := defaultPatterns[name]
			if !ok {
				return fmt.Errorf("redact: unknown pattern type %q", name)
			}
			selected[name] = expr
		}
		r.patterns = make(map[string]*regexp.Regexp, len(selected))
		return r.compileInto(selected)
	}
}

// WithTemplate replaces the active patterns with a privacy template's set.
func WithTemplate(name string) Option {
	return func(r *Redactor) error {
		tpl, ok := templates[name]
		if !ok {
			return fmt.Errorf("redact: unknown template %q", name)
		}
		r.patterns = make(map[string]*regexp.Regexp, len(tpl.Patterns))
		return r.compileInto(tpl.Patterns)
	}
}

// NewRedactor builds a redactor. Without pattern options the built-in
// email/phone/credit_card/ssn set is active.
func NewRedactor(mode Mode, opts ...Option) (*Redactor, error) {
	if !validModes[mode] {
		return nil, fmt.Errorf("redact: unknown mode %q", mode)
	}
	r := &Redactor{mode: mode, strength: 15, patterns: make(map[string]*regexp.Regexp)}
	if err := r.compileInto(defaultPatterns); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Redactor) compileInto(patterns map[string]string) error {
	for name, expr := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("redact: compile pattern %q: %w", name, err)
		}
		r.patterns[name] = re
	}
	return nil
}

// Match returns the name of the first pattern matching the text, or "".
func (r *Redactor) Match(text string) string {
	for name, re := range r.patterns {
		if re.MatchString(text) {
			return name
		}
	}
	return ""
}

// Apply redacts every OCR word whose text matches an active pattern and
// reports how many regions were obscured. The input image is not modified.
func (r *Redactor) Apply(img image.Image, words []ocr.TextWord) (*image.NRGBA, int) {
	out := imaging.Clone(img)
	count := 0
	for _, w := range words {
		if r.Match(w.Text) == "" {
			continue
		}
		rect := regionRect(w.Bounds)
		if r.redactRegion(out, rect) {
			count++
		}
	}
	return out, count
}

// ApplyRegions redacts explicit rectangles without consulting OCR.
func (r *Redactor) ApplyRegions(img image.Image, rects []image.Rectangle) *image.NRGBA {
	out := imaging.Clone(img)
	for _, rect := range rects {
		r.redactRegion(out, rect)
	}
	return out
}

func (r *Redactor) redactRegion(img *image.NRGBA, rect image.Rectangle) bool {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return false
	}
	switch r.mode {
	case ModeBlur:
		region := imaging.Crop(img, rect)
		blurred := imaging.Blur(region, sigmaForStrength(r.strength))
		pasteAt(img, blurred, rect.Min)
	case ModePixelate:
		region := imaging.Crop(img, rect)
		size := int(math.Max(8, r.strength))
		w := maxInt(1, rect.Dx()/size)
		h := maxInt(1, rect.Dy()/size)
		small := imaging.Resize(region, w, h, imaging.Linear)
		big := imaging.Resize(small, rect.Dx(), rect.Dy(), imaging.NearestNeighbor)
		pasteAt(img, big, rect.Min)
	case ModeBlock:
		draw.Draw(img, rect, image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)
	case ModeGenerate:
		fillStriped(img, rect)
	}
	return true
}

// fillStriped paints a neutral striped placeholder, a visual cue that the
// region held text without hinting at its length or content.
func fillStriped(img *image.NRGBA, rect image.Rectangle) {
	base := color.NRGBA{R: 50, G: 50, B: 50, A: 255}
	stripe := color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		c := base
		if (y-rect.Min.Y)%4 < 2 {
			c = stripe
		}
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func pasteAt(dst *image.NRGBA, src image.Image, at image.Point) {
	b := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Src)
}

// sigmaForStrength converts a kernel-size style strength (the original
// GaussianBlur ksize knob) into a gaussian sigma.
func sigmaForStrength(strength float64) float64 {
	return math.Max(1, strength/3)
}

func regionRect(r ocr.Region) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
