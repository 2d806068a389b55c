package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/ocr"
	_ "github.com/wudi/shotkit/ocr/tesseract" // default engine
)

var (
	ocrLang          string
	ocrDisplay       int
	ocrFromScreen    bool
	ocrMinConfidence float64
	ocrShowWords     bool
)

var ocrCmd = &cobra.Command{
	Use:   "ocr [image.png]",
	Short: "Extract text from an image or the screen",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOCR,
}

func init() {
	ocrCmd.Flags().StringVarP(&ocrLang, "lang", "l", "", "language (default from config)")
	ocrCmd.Flags().BoolVarP(&ocrFromScreen, "screen", "s", false, "read from the screen instead of a file")
	ocrCmd.Flags().IntVarP(&ocrDisplay, "display", "d", 0, "display index with --screen")
	ocrCmd.Flags().Float64Var(&ocrMinConfidence, "min-confidence", 0, "drop words below this confidence (0..1)")
	ocrCmd.Flags().BoolVarP(&ocrShowWords, "words", "w", false, "print per-word boxes and confidence")
	rootCmd.AddCommand(ocrCmd)
}

func runOCR(cmd *cobra.Command, args []string) error {
	lang := ocrLang
	if lang == "" {
		lang = cfg.OCR.Language
	}
	minConf := ocrMinConfidence
	if minConf == 0 {
		minConf = float64(cfg.OCR.ConfidenceThreshold) / 100
	}

	input, err := ocrInput(args, lang)
	if err != nil {
		return err
	}
	result, err := ocr.DefaultEngine().Recognize(cmd.Context(), input)
	if err != nil {
		return err
	}

	if ocrShowWords {
		for _, w := range result.FilterWords(minConf) {
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\t%.0f,%.0f %4.0fx%.0f\t%s\n",
				w.Confidence, w.Bounds.X, w.Bounds.Y, w.Bounds.Width, w.Bounds.Height, w.Text)
		}
		return nil
	}
	text := strings.TrimSpace(result.PlainText)
	if text == "" {
		return fmt.Errorf("no text recognized")
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func ocrInput(args []string, lang string) (ocr.Input, error) {
	if ocrFromScreen {
		shot, err := capture.Display(ocrDisplay)
		if err != nil {
			return ocr.Input{}, err
		}
		return ocr.FromScreenshot(shot, ocr.WithLanguages(lang))
	}
	if len(args) == 0 {
		return ocr.Input{}, fmt.Errorf("pass an image path or --screen")
	}
	return fileInput(args[0], lang)
}

// fileInput wraps an on-disk image as an OCR input, sniffing the format
// from the extension.
func fileInput(path, lang string) (ocr.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ocr.Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	format := ocr.ImageFormatPNG
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		format = ocr.ImageFormatJPEG
	case ".tif", ".tiff":
		format = ocr.ImageFormatTIFF
	}
	return ocr.Input{
		ID:           path,
		Image:        data,
		Format:       format,
		MonitorIndex: -1,
		Languages:    []string{lang},
	}, nil
}
