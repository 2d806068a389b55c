// Package beautify composites a screenshot onto a padded, shadowed,
// gradient-backed canvas with optional OS-style window chrome, the way
// code-screenshot tools present terminal captures.
package beautify

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"runtime"

	"github.com/disintegration/imaging"
)

// WindowStyle selects the window-control chrome drawn above the
// screenshot.
type WindowStyle string

const (
	StyleMacOS   WindowStyle = "macos"
	StyleWindows WindowStyle = "windows"
	StyleLinux   WindowStyle = "linux"
	StyleNone    WindowStyle = "none"
)

// Background selects the canvas fill behind the window.
type Background string

const (
	BackgroundGradient    Background = "gradient"
	BackgroundSolid       Background = "solid"
	BackgroundTransparent Background = "transparent"
)

// Title bar height when chrome is drawn.
const controlsHeight = 28

// Shadow geometry, tuned to the reference renderer.
const (
	shadowOffset = 20
	shadowBlur   = 30
)

// Options tunes the composited output.
type Options struct {
	Padding         int
	ShadowIntensity float64
	CornerRadius    int
	WindowStyle     WindowStyle
	Background      Background
}

// DefaultOptions returns the standard presentation: 60px padding, half
// shadow, 10px corners, auto-detected chrome, gradient background.
func DefaultOptions() Options {
	return Options{
		Padding:         60,
		ShadowIntensity: 0.5,
		CornerRadius:    10,
		WindowStyle:     detectStyle(),
		Background:      BackgroundGradient,
	}
}

func detectStyle() WindowStyle {
	switch runtime.GOOS {
	case "darwin":
		return StyleMacOS
	case "windows":
		return StyleWindows
	default:
		return StyleLinux
	}
}

// Beautifier renders screenshots with a fixed theme and options.
type Beautifier struct {
	theme Theme
	opts  Options
}

// New builds a beautifier. An empty window style auto-detects from the
// host OS; an empty background means gradient.
func New(theme string, opts Options) (*Beautifier, error) {
	t, ok := ThemeByName(theme)
	if !ok {
		return nil, fmt.Errorf("beautify: unknown theme %q (available: %v)", theme, ThemeNames())
	}
	if opts.WindowStyle == "" {
		opts.WindowStyle = detectStyle()
	}
	switch opts.WindowStyle {
	case StyleMacOS, StyleWindows, StyleLinux, StyleNone:
	default:
		return nil, fmt.Errorf("beautify: unknown window style %q", opts.WindowStyle)
	}
	if opts.Background == "" {
		opts.Background = BackgroundGradient
	}
	switch opts.Background {
	case BackgroundGradient, BackgroundSolid, BackgroundTransparent:
	default:
		return nil, fmt.Errorf("beautify: unknown background %q", opts.Background)
	}
	if opts.Padding < 0 {
		return nil, fmt.Errorf("beautify: negative padding %d", opts.Padding)
	}
	if opts.ShadowIntensity < 0 || opts.ShadowIntensity > 1 {
		return nil, fmt.Errorf("beautify: shadow intensity %g outside 0..1", opts.ShadowIntensity)
	}
	return &Beautifier{theme: t, opts: opts}, nil
}

// Theme returns the active theme.
func (b *Beautifier) Theme() Theme { return b.theme }

// Render composites the screenshot onto the themed canvas. The input is
// not modified.
func (b *Beautifier) Render(img image.Image) *image.NRGBA {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()

	chrome := 0
	if b.opts.WindowStyle != StyleNone {
		chrome = controlsHeight
	}
	outW := srcW + 2*b.opts.Padding
	outH := srcH + 2*b.opts.Padding + chrome

	canvas := b.background(outW, outH)

	windowRect := image.Rect(
		b.opts.Padding,
		b.opts.Padding,
		b.opts.Padding+srcW,
		b.opts.Padding+chrome+srcH,
	)

	if b.opts.ShadowIntensity > 0 {
		b.drawShadow(canvas, windowRect)
	}

	fillRounded(canvas, windowRect, b.opts.CornerRadius, b.theme.WindowBG)

	if b.opts.WindowStyle != StyleNone {
		drawChrome(canvas, b.opts.WindowStyle, windowRect)
	}

	draw.Draw(canvas,
		image.Rect(windowRect.Min.X, windowRect.Min.Y+chrome, windowRect.Max.X, windowRect.Max.Y),
		img, img.Bounds().Min, draw.Src)

	return canvas
}

func (b *Beautifier) background(w, h int) *image.NRGBA {
	switch b.opts.Background {
	case BackgroundSolid:
		canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(b.theme.BGStart), image.Point{}, draw.Src)
		return canvas
	case BackgroundTransparent:
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	default:
		return gradient(w, h, b.theme.BGStart, b.theme.BGEnd)
	}
}

// gradient paints a vertical linear gradient from start to end.
func gradient(w, h int, start, end color.NRGBA) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		ratio := float64(y) / float64(h)
		c := color.NRGBA{
			R: lerp(start.R, end.R, ratio),
			G: lerp(start.G, end.G, ratio),
			B: lerp(start.B, end.B, ratio),
			A: 255,
		}
		for x := 0; x < w; x++ {
			canvas.SetNRGBA(x, y, c)
		}
	}
	return canvas
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// drawShadow renders a blurred, offset rounded rectangle under the window
// and blends it over the canvas.
func (b *Beautifier) drawShadow(canvas *image.NRGBA, window image.Rectangle) {
	layer := image.NewNRGBA(canvas.Bounds())
	alpha := uint8(255 * b.opts.ShadowIntensity * 0.3)
	sc := b.theme.Shadow
	sc.A = alpha
	shadowRect := window.Add(image.Pt(shadowOffset, shadowOffset))
	fillRounded(layer, shadowRect, b.opts.CornerRadius, sc)
	blurred := imaging.Blur(layer, float64(shadowBlur)/3)
	draw.Draw(canvas, canvas.Bounds(), blurred, blurred.Bounds().Min, draw.Over)
}

// fillRounded fills a rectangle with rounded corners of the given radius.
func fillRounded(dst *image.NRGBA, r image.Rectangle, radius int, c color.NRGBA) {
	if radius <= 0 {
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
		return
	}
	rr := radius * radius
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx, dy := 0, 0
			if x < r.Min.X+radius {
				dx = r.Min.X + radius - x
			} else if x >= r.Max.X-radius {
				dx = x - (r.Max.X - radius - 1)
			}
			if y < r.Min.Y+radius {
				dy = r.Min.Y + radius - y
			} else if y >= r.Max.Y-radius {
				dy = y - (r.Max.Y - radius - 1)
			}
			if dx > 0 && dy > 0 && dx*dx+dy*dy > rr {
				continue
			}
			blendAt(dst, x, y, c)
		}
	}
}

func blendAt(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if c.A == 255 {
		dst.SetNRGBA(x, y, c)
		return
	}
	draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}
