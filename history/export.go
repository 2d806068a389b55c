package history

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// Screen captures are pixel-sized; 96 DPI is the conventional scale for
// turning them into physical page dimensions.
const (
	pixelsPerInch = 96
	mmPerInch     = 25.4
)

func pixelsToMm(pixels int) float64 {
	return float64(pixels) * mmPerInch / pixelsPerInch
}

// ContactSheet exports the given entries to a PDF, one screenshot per
// page, each page sized to its screenshot. An empty ids slice exports
// everything, newest first.
func (s *Store) ContactSheet(ids []string, outPath, title string) error {
	var entries []Entry
	if len(ids) == 0 {
		entries = s.List()
	} else {
		for _, id := range ids {
			e, ok := s.Get(id)
			if !ok {
				return fmt.Errorf("history: unknown id %q", id)
			}
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return fmt.Errorf("history: nothing to export")
	}

	first := entries[0]
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pixelsToMm(first.Width), Ht: pixelsToMm(first.Height)},
	})
	if title != "" {
		pdf.SetTitle(title, true)
	}

	for _, e := range entries {
		info, err := os.Stat(e.Path)
		if err != nil || info.Size() == 0 {
			continue
		}
		w := pixelsToMm(e.Width)
		h := pixelsToMm(e.Height)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(e.Path, 0, 0, w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("history: write pdf: %w", err)
	}
	return nil
}
