// Package diff detects what changed between two captures. Region
// detection works on a thresholded grayscale difference; whole-image
// similarity uses perceptual hashing so resized or re-encoded captures
// still compare as equal.
package diff

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/corona10/goimagehash"
)

// minRegionArea filters out sub-100px flicker (cursor blink, clock tick)
// from the changed-region list.
const minRegionArea = 100

// tileSize is the granularity at which changed pixels are grouped into
// connected regions.
const tileSize = 8

// Regions returns bounding boxes around the areas where cur differs from
// prev. threshold is the per-pixel sensitivity in 0..1; a pixel counts as
// changed when its grayscale delta exceeds 255*threshold.
func Regions(prev, cur image.Image, threshold float64) ([]image.Rectangle, error) {
	pb, cb := prev.Bounds(), cur.Bounds()
	if pb.Dx() != cb.Dx() || pb.Dy() != cb.Dy() {
		return nil, fmt.Errorf("diff: size mismatch %dx%d vs %dx%d", pb.Dx(), pb.Dy(), cb.Dx(), cb.Dy())
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("diff: threshold %g outside 0..1", threshold)
	}
	w, h := cb.Dx(), cb.Dy()
	limit := uint32(255 * threshold)

	cols := (w + tileSize - 1) / tileSize
	rows := (h + tileSize - 1) / tileSize
	changed := make([]bool, cols*rows)
	// Pixel-exact extent per tile so boxes hug the change, not the grid.
	type extent struct {
		minX, minY, maxX, maxY int
		set                    bool
	}
	extents := make([]extent, cols*rows)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := grayAt(prev, pb.Min.X+x, pb.Min.Y+y)
			b := grayAt(cur, cb.Min.X+x, cb.Min.Y+y)
			d := a - b
			if b > a {
				d = b - a
			}
			if d <= limit {
				continue
			}
			idx := (y/tileSize)*cols + x/tileSize
			changed[idx] = true
			e := &extents[idx]
			if !e.set {
				e.minX, e.minY, e.maxX, e.maxY = x, y, x, y
				e.set = true
				continue
			}
			if x < e.minX {
				e.minX = x
			}
			if x > e.maxX {
				e.maxX = x
			}
			if y < e.minY {
				e.minY = y
			}
			if y > e.maxY {
				e.maxY = y
			}
		}
	}

	// Union-find over 8-connected changed tiles.
	parent := make([]int, cols*rows)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			idx := ty*cols + tx
			if !changed[idx] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := tx+dx, ty+dy
					if nx < 0 || ny < 0 || nx >= cols || ny >= rows {
						continue
					}
					nidx := ny*cols + nx
					if changed[nidx] {
						union(idx, nidx)
					}
				}
			}
		}
	}

	boxes := make(map[int]image.Rectangle)
	for idx, ok := range changed {
		if !ok {
			continue
		}
		e := extents[idx]
		rect := image.Rect(e.minX, e.minY, e.maxX+1, e.maxY+1)
		root := find(idx)
		if existing, seen := boxes[root]; seen {
			boxes[root] = existing.Union(rect)
		} else {
			boxes[root] = rect
		}
	}

	var regions []image.Rectangle
	for _, rect := range boxes {
		if rect.Dx()*rect.Dy() >= minRegionArea {
			regions = append(regions, rect.Add(cb.Min))
		}
	}
	return regions, nil
}

// Annotate draws red rectangles around the changed regions on a copy of
// cur.
func Annotate(cur image.Image, regions []image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, cur.Bounds().Dx(), cur.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), cur, cur.Bounds().Min, draw.Src)
	red := image.NewUniform(color.NRGBA{R: 255, A: 255})
	for _, r := range regions {
		r = r.Sub(cur.Bounds().Min)
		clip := out.Bounds()
		draw.Draw(out, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+2).Intersect(clip), red, image.Point{}, draw.Src)
		draw.Draw(out, image.Rect(r.Min.X, r.Max.Y-2, r.Max.X, r.Max.Y).Intersect(clip), red, image.Point{}, draw.Src)
		draw.Draw(out, image.Rect(r.Min.X, r.Min.Y, r.Min.X+2, r.Max.Y).Intersect(clip), red, image.Point{}, draw.Src)
		draw.Draw(out, image.Rect(r.Max.X-2, r.Min.Y, r.Max.X, r.Max.Y).Intersect(clip), red, image.Point{}, draw.Src)
	}
	return out
}

// Distance returns the perceptual-hash hamming distance between two
// images. Zero means visually identical; small values mean near
// duplicates.
func Distance(a, b image.Image) (int, error) {
	ha, err := goimagehash.PerceptionHash(a)
	if err != nil {
		return 0, fmt.Errorf("diff: hash first image: %w", err)
	}
	hb, err := goimagehash.PerceptionHash(b)
	if err != nil {
		return 0, fmt.Errorf("diff: hash second image: %w", err)
	}
	d, err := ha.Distance(hb)
	if err != nil {
		return 0, fmt.Errorf("diff: compare hashes: %w", err)
	}
	return d, nil
}

// Similar reports whether the perceptual distance is at or below
// maxDistance.
func Similar(a, b image.Image, maxDistance int) (bool, error) {
	d, err := Distance(a, b)
	if err != nil {
		return false, err
	}
	return d <= maxDistance, nil
}

func grayAt(img image.Image, x, y int) uint32 {
	r, g, b, _ := img.At(x, y).RGBA()
	// ITU-R BT.601 luma, in 8-bit range.
	return (299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000
}
