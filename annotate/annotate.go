// Package annotate draws simple callouts (text, boxes, arrows, circles,
// highlights) onto screenshots. Every operation works on a copy and
// leaves the input untouched.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Style carries stroke parameters shared by the shape helpers.
type Style struct {
	Color     color.NRGBA
	Thickness int
}

// DefaultStyle is a 2px red stroke, matching the usual "look here"
// annotation.
func DefaultStyle() Style {
	return Style{Color: color.NRGBA{R: 255, A: 255}, Thickness: 2}
}

func (s Style) normalized() Style {
	if s.Thickness <= 0 {
		s.Thickness = 2
	}
	if s.Color.A == 0 {
		s.Color = color.NRGBA{R: 255, A: 255}
	}
	return s
}

// Text renders a string at the given baseline origin using the bundled Go
// Regular face at the requested point size.
func Text(img image.Image, text string, at image.Point, size float64, c color.NRGBA) (*image.NRGBA, error) {
	if size <= 0 {
		size = 20
	}
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("annotate: parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("annotate: build face: %w", err)
	}
	defer face.Close()

	out := imaging.Clone(img)
	drawer := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(at.X, at.Y),
	}
	drawer.DrawString(text)
	return out, nil
}

// Rectangle strokes the outline of rect.
func Rectangle(img image.Image, rect image.Rectangle, style Style) *image.NRGBA {
	style = style.normalized()
	out := imaging.Clone(img)
	strokeRect(out, rect, style.Thickness, style.Color)
	return out
}

// Arrow draws a line from start to end with a two-stroke head at the end
// point.
func Arrow(img image.Image, start, end image.Point, style Style) *image.NRGBA {
	style = style.normalized()
	out := imaging.Clone(img)
	strokeLine(out, start, end, style.Thickness, style.Color)

	angle := math.Atan2(float64(end.Y-start.Y), float64(end.X-start.X))
	headLen := math.Max(8, float64(style.Thickness)*4)
	for _, spread := range []float64{math.Pi / 6, -math.Pi / 6} {
		tip := image.Pt(
			end.X-int(math.Round(headLen*math.Cos(angle+spread))),
			end.Y-int(math.Round(headLen*math.Sin(angle+spread))),
		)
		strokeLine(out, end, tip, style.Thickness, style.Color)
	}
	return out
}

// Circle strokes a circle; a negative thickness fills it (the reference
// renderer's convention).
func Circle(img image.Image, center image.Point, radius int, style Style) *image.NRGBA {
	out := imaging.Clone(img)
	c := style.Color
	if c.A == 0 {
		c = color.NRGBA{R: 255, A: 255}
	}
	if style.Thickness < 0 {
		fillCircle(out, center, radius, c)
		return out
	}
	thickness := style.Thickness
	if thickness == 0 {
		thickness = 2
	}
	rr := radius * radius
	inner := (radius - thickness) * (radius - thickness)
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			dx, dy := x-center.X, y-center.Y
			d := dx*dx + dy*dy
			if d <= rr && d >= inner {
				setClamped(out, x, y, c)
			}
		}
	}
	return out
}

// Highlight blends a translucent color over rect. Alpha outside 0..1
// falls back to 0.3.
func Highlight(img image.Image, rect image.Rectangle, c color.NRGBA, alpha float64) *image.NRGBA {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	if c.A == 0 {
		c = color.NRGBA{R: 255, G: 255, A: 255} // yellow
	}
	c.A = uint8(255 * alpha)
	out := imaging.Clone(img)
	draw.Draw(out, rect.Intersect(out.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
	return out
}

func strokeRect(dst *image.NRGBA, r image.Rectangle, thickness int, c color.NRGBA) {
	u := image.NewUniform(c)
	clip := dst.Bounds()
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness).Intersect(clip), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y).Intersect(clip), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y).Intersect(clip), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y).Intersect(clip), u, image.Point{}, draw.Over)
}

func strokeLine(dst *image.NRGBA, p0, p1 image.Point, thickness int, c color.NRGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	steps := maxInt(absInt(dx), absInt(dy))
	if steps == 0 {
		setClamped(dst, p0.X, p0.Y, c)
		return
	}
	half := thickness / 2
	for i := 0; i <= steps; i++ {
		x := p0.X + dx*i/steps
		y := p0.Y + dy*i/steps
		for tx := -half; tx < thickness-half; tx++ {
			for ty := -half; ty < thickness-half; ty++ {
				setClamped(dst, x+tx, y+ty, c)
			}
		}
	}
}

func fillCircle(dst *image.NRGBA, center image.Point, radius int, c color.NRGBA) {
	rr := radius * radius
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= rr {
				setClamped(dst, x, y, c)
			}
		}
	}
}

func setClamped(dst *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetNRGBA(x, y, c)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
