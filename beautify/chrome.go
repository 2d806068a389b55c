package beautify

import (
	"image"
	"image/color"
	"image/draw"
)

// drawChrome paints window controls in the title-bar strip at the top of
// the window rectangle.
func drawChrome(dst *image.NRGBA, style WindowStyle, window image.Rectangle) {
	switch style {
	case StyleMacOS:
		// Traffic lights: red, yellow, green.
		colors := []color.NRGBA{
			{R: 255, G: 95, B: 86, A: 255},
			{R: 255, G: 189, B: 46, A: 255},
			{R: 39, G: 201, B: 63, A: 255},
		}
		cy := window.Min.Y + 14
		for i, c := range colors {
			cx := window.Min.X + 16 + i*20
			fillCircle(dst, cx, cy, 6, c)
		}
	case StyleWindows:
		gray := color.NRGBA{R: 150, G: 150, B: 150, A: 255}
		red := color.NRGBA{R: 232, G: 17, B: 35, A: 255}
		size := 12
		y := window.Min.Y + 8
		x := window.Max.X - 60
		// Minimize.
		drawHLine(dst, x, x+size, y+6, 2, gray)
		// Maximize.
		strokeRect(dst, image.Rect(x+20, y, x+20+size, y+size), 2, gray)
		// Close.
		drawLine(dst, image.Pt(x+40, y), image.Pt(x+40+size, y+size), 2, red)
		drawLine(dst, image.Pt(x+40+size, y), image.Pt(x+40, y+size), 2, red)
	case StyleLinux:
		fill := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
		outline := color.NRGBA{R: 150, G: 150, B: 150, A: 255}
		cy := window.Min.Y + 14
		for i := 0; i < 3; i++ {
			cx := window.Min.X + 12 + i*18
			fillCircle(dst, cx, cy, 5, fill)
			strokeCircle(dst, cx, cy, 5, outline)
		}
	}
}

func fillCircle(dst *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}

func strokeCircle(dst *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	rr := r * r
	inner := (r - 1) * (r - 1)
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			d := dx*dx + dy*dy
			if d <= rr && d > inner {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}

func drawHLine(dst *image.NRGBA, x0, x1, y, thickness int, c color.NRGBA) {
	draw.Draw(dst, image.Rect(x0, y, x1, y+thickness), image.NewUniform(c), image.Point{}, draw.Src)
}

func strokeRect(dst *image.NRGBA, r image.Rectangle, thickness int, c color.NRGBA) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawLine draws a thick line between two points with simple DDA
// stepping; chrome glyphs are small enough that antialiasing is not worth
// the dependency.
func drawLine(dst *image.NRGBA, p0, p1 image.Point, thickness int, c color.NRGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	steps := maxInt(absInt(dx), absInt(dy))
	if steps == 0 {
		dst.SetNRGBA(p0.X, p0.Y, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := p0.X + dx*i/steps
		y := p0.Y + dy*i/steps
		for tx := 0; tx < thickness; tx++ {
			for ty := 0; ty < thickness; ty++ {
				dst.SetNRGBA(x+tx, y+ty, c)
			}
		}
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
