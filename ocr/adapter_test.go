package ocr

import (
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/wudi/shotkit/capture"
)

func testScreenshot(monitor, w, h int) *capture.Screenshot {
	return &capture.Screenshot{
		Image:      image.NewRGBA(image.Rect(0, 0, w, h)),
		Monitor:    monitor,
		Bounds:     image.Rect(0, 0, w, h),
		CapturedAt: time.Unix(0, 42),
	}
}

func TestFromScreenshot(t *testing.T) {
	shot := testScreenshot(2, 3, 3)
	region := Region{X: 0, Y: 0, Width: 1, Height: 1}
	meta := map[string]string{"psm": "6"}

	in, err := FromScreenshot(
		shot,
		WithLanguages("eng", "spa"),
		WithRegion(region),
		WithDPI(300),
		WithMetadata(meta),
	)
	if err != nil {
		t.Fatalf("FromScreenshot() error = %v", err)
	}
	if in.Format != ImageFormatPNG {
		t.Fatalf("unexpected format: %v", in.Format)
	}
	if in.MonitorIndex != 2 {
		t.Fatalf("unexpected monitor index: %d", in.MonitorIndex)
	}
	if got := in.ID; got != "monitor-2-42" {
		t.Fatalf("unexpected id: %s", got)
	}
	if len(in.Image) == 0 {
		t.Fatalf("expected encoded image data")
	}
	if !reflect.DeepEqual(in.Languages, []string{"eng", "spa"}) {
		t.Fatalf("unexpected languages: %+v", in.Languages)
	}
	if in.Region == nil || *in.Region != region {
		t.Fatalf("unexpected region: %#v", in.Region)
	}
	if in.DPI != 300 {
		t.Fatalf("unexpected dpi: %d", in.DPI)
	}
	meta["psm"] = "7"
	if in.Metadata["psm"] != "6" {
		t.Fatalf("metadata was not copied: %+v", in.Metadata)
	}
}

func TestWithRegionClearsEmpty(t *testing.T) {
	in := Input{Region: &Region{X: 1, Y: 1, Width: 2, Height: 2}}
	WithRegion(Region{})(&in)
	if in.Region != nil {
		t.Fatalf("expected nil region for empty input, got %#v", in.Region)
	}
}

func TestWithTesseractPSM(t *testing.T) {
	var in Input
	WithTesseractPSM(6)(&in)
	if in.Metadata["tessedit_pageseg_mode"] != "6" {
		t.Fatalf("psm not set: %+v", in.Metadata)
	}
	WithTesseractWhitelist("0123456789")(&in)
	if in.Metadata["tessedit_char_whitelist"] != "0123456789" {
		t.Fatalf("whitelist not set: %+v", in.Metadata)
	}
}
