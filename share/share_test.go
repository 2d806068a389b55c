package share

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	return img
}

func TestDataURL(t *testing.T) {
	url, err := DataURL(testImage())
	if err != nil {
		t.Fatalf("DataURL() error = %v", err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("url missing prefix: %.40s", url)
	}
	raw, err := base64.StdEncoding.DecodeString(url[len(prefix):])
	if err != nil {
		t.Fatalf("payload not base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload not png: %v", err)
	}
	if decoded.Bounds().Dx() != 8 {
		t.Fatalf("decoded size %v", decoded.Bounds())
	}
}

func TestSaveWithMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.png")
	meta := map[string]string{
		"Software": "shotkit",
		"Monitor":  "1",
		"Title":    "standup notes",
	}
	if err := SaveWithMetadata(testImage(), path, meta); err != nil {
		t.Fatalf("SaveWithMetadata() error = %v", err)
	}

	// Still a valid PNG for readers that skip ancillary chunks.
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output no longer decodes as png: %v", err)
	}
	if decoded.Bounds().Dx() != 8 {
		t.Fatalf("decoded size %v", decoded.Bounds())
	}

	got, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(got) != len(meta) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(meta), got)
	}
	for k, v := range meta {
		if got[k] != v {
			t.Fatalf("key %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestSaveWithMetadataEmptyMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.png")
	if err := SaveWithMetadata(testImage(), path, nil); err != nil {
		t.Fatalf("SaveWithMetadata() error = %v", err)
	}
	got, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unexpected metadata: %v", got)
	}
}

func TestEmbedTextRejectsBadKey(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := embedText(buf.Bytes(), map[string]string{"": "x"}); err == nil {
		t.Fatalf("empty key must be rejected")
	}
	long := strings.Repeat("k", 80)
	if _, err := embedText(buf.Bytes(), map[string]string{long: "x"}); err == nil {
		t.Fatalf("80-byte key must be rejected")
	}
}

func TestEmbedTextRejectsNonPNG(t *testing.T) {
	if _, err := embedText([]byte("JFIF not a png"), map[string]string{"a": "b"}); err == nil {
		t.Fatalf("expected error for non-png input")
	}
}
