// Package share prepares captures for handing off: clipboard copies,
// base64 data URLs, and PNGs with embedded metadata.
package share

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/atotto/clipboard"
)

// DataURL encodes the image as a data:image/png;base64 URL, suitable for
// pasting into anything that renders inline images.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("share: encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// CopyDataURL puts the image's data URL on the system clipboard.
func CopyDataURL(img image.Image) error {
	url, err := DataURL(img)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(url); err != nil {
		return fmt.Errorf("share: write clipboard: %w", err)
	}
	return nil
}

// SaveWithMetadata writes the image as a PNG whose tEXt chunks carry the
// given key/value pairs. Readers that ignore ancillary chunks see a
// normal PNG.
func SaveWithMetadata(img image.Image, path string, metadata map[string]string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("share: encode png: %w", err)
	}
	data, err := embedText(buf.Bytes(), metadata)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("share: write %s: %w", path, err)
	}
	return nil
}

// ReadMetadata returns the tEXt key/value pairs embedded in a PNG file.
// A PNG without tEXt chunks yields an empty map.
func ReadMetadata(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("share: read %s: %w", path, err)
	}
	return extractText(data)
}
