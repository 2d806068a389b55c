// Package detect finds structural regions inside a single capture:
// text-dense dark blocks that look like code or terminal panes, and
// edge-outlined rectangles that look like application windows.
package detect

import (
	"image"
	"sort"
)

// Minimum sizes below which a candidate is noise rather than a region.
const (
	minCodeWidth    = 50
	minCodeHeight   = 20
	minWindowWidth  = 100
	minWindowHeight = 50
)

// codeConfidence is a fixed score for threshold-based code detection;
// nothing in the pipeline measures how code-like the content is.
const codeConfidence = 0.8

// edgeThreshold is the Sobel gradient magnitude above which a pixel
// counts as an edge.
const edgeThreshold = 96

// tileSize is the granularity at which foreground pixels are grouped
// into connected regions.
const tileSize = 8

// Region is a detected area with its pixel bounds. Confidence is
// populated for code regions; window detection reports geometry only.
type Region struct {
	Bounds     image.Rectangle
	Area       int
	Confidence float64
}

// CodeRegions returns areas that look like code or terminal panes:
// connected blocks of foreground darker than the image's Otsu
// threshold, wide and tall enough to hold text.
func CodeRegions(img image.Image) []Region {
	gray, w, h := grayscale(img)
	limit := otsuThreshold(gray)
	mask := make([]bool, len(gray))
	for i, g := range gray {
		mask[i] = g < limit
	}
	boxes := maskRegions(mask, w, h)
	var regions []Region
	for _, r := range boxes {
		if r.Dx() <= minCodeWidth || r.Dy() <= minCodeHeight {
			continue
		}
		regions = append(regions, Region{
			Bounds:     r.Add(img.Bounds().Min),
			Area:       r.Dx() * r.Dy(),
			Confidence: codeConfidence,
		})
	}
	sortRegions(regions)
	return regions
}

// Windows returns areas outlined by strong edges, sized like
// application windows.
func Windows(img image.Image) []Region {
	gray, w, h := grayscale(img)
	mask := sobelEdges(gray, w, h)
	boxes := maskRegions(mask, w, h)
	var regions []Region
	for _, r := range boxes {
		if r.Dx() <= minWindowWidth || r.Dy() <= minWindowHeight {
			continue
		}
		regions = append(regions, Region{
			Bounds: r.Add(img.Bounds().Min),
			Area:   r.Dx() * r.Dy(),
		})
	}
	sortRegions(regions)
	return regions
}

// Bounds collects just the rectangles, for annotation overlays.
func Bounds(regions []Region) []image.Rectangle {
	rects := make([]image.Rectangle, len(regions))
	for i, r := range regions {
		rects[i] = r.Bounds
	}
	return rects
}

func sortRegions(regions []Region) {
	sort.Slice(regions, func(i, j int) bool {
		a, b := regions[i].Bounds.Min, regions[j].Bounds.Min
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

func grayscale(img image.Image) ([]uint8, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// ITU-R BT.601 luma, in 8-bit range.
			gray[y*w+x] = uint8((299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000)
		}
	}
	return gray, w, h
}

// otsuThreshold picks the gray level that maximizes between-class
// variance over the image histogram.
func otsuThreshold(gray []uint8) uint8 {
	var hist [256]int
	for _, g := range gray {
		hist[g]++
	}
	total := len(gray)
	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}
	var sumB, wB float64
	best, bestVar := 0, 0.0
	for i, n := range hist {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		v := wB * wF * (mB - mF) * (mB - mF)
		if v > bestVar {
			bestVar = v
			best = i
		}
	}
	return uint8(best)
}

// sobelEdges marks pixels whose gradient magnitude exceeds
// edgeThreshold. Border pixels are left unmarked.
func sobelEdges(gray []uint8, w, h int) []bool {
	mask := make([]bool, w*h)
	if w < 3 || h < 3 {
		return mask
	}
	at := func(x, y int) int { return int(gray[y*w+x]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			if gx < 0 {
				gx = -gx
			}
			if gy < 0 {
				gy = -gy
			}
			if gx+gy > edgeThreshold {
				mask[y*w+x] = true
			}
		}
	}
	return mask
}

// maskRegions groups foreground pixels into connected components and
// returns a pixel-exact bounding box per component. Grouping runs over
// 8-connected tiles so thin outlines still join into one region.
func maskRegions(mask []bool, w, h int) []image.Rectangle {
	cols := (w + tileSize - 1) / tileSize
	rows := (h + tileSize - 1) / tileSize
	marked := make([]bool, cols*rows)
	type extent struct {
		minX, minY, maxX, maxY int
		set                    bool
	}
	extents := make([]extent, cols*rows)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				continue
			}
			idx := (y/tileSize)*cols + x/tileSize
			marked[idx] = true
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
			if !marked[idx] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := tx+dx, ty+dy
					if nx < 0 || ny < 0 || nx >= cols || ny >= rows {
						continue
					}
					nidx := ny*cols + nx
					if marked[nidx] {
						union(idx, nidx)
					}
				}
			}
		}
	}

	boxes := make(map[int]image.Rectangle)
	for idx, ok := range marked {
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

	out := make([]image.Rectangle, 0, len(boxes))
	for _, rect := range boxes {
		out = append(out, rect)
	}
	return out
}
