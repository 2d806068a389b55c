package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/history"
	"github.com/wudi/shotkit/ocr"
)

var (
	historyDir      string
	historyTags     []string
	historyMeta     []string
	historyNoOCR    bool
	historyDisplay  int
	historySheetIDs []string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Store, search, and export past captures",
}

var historyAddCmd = &cobra.Command{
	Use:   "add [image.png]",
	Short: "Capture (or import) a screenshot into the history",
	Long: `With no argument, grabs the configured display and stores it. With a
path, imports an existing image. The frame is OCR-indexed unless
--no-ocr is set, so later searches match the text that was on screen.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryAdd,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find captures by on-screen text, metadata, or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		entries := store.Search(args[0])
		if len(entries) == 0 {
			return fmt.Errorf("no matches for %q", args[0])
		}
		printEntries(cmd, entries)
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored captures, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		printEntries(cmd, store.List())
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a stored capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		return store.Remove(args[0])
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <output.pdf>",
	Short: "Export captures to a PDF contact sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		if err := store.ContactSheet(historySheetIDs, args[0], "shotkit history"); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), args[0])
		return nil
	},
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDir, "dir", "", "history directory (default: ~/.shotkit/history)")
	historyAddCmd.Flags().StringSliceVarP(&historyTags, "tag", "t", nil, "tags to attach")
	historyAddCmd.Flags().StringSliceVarP(&historyMeta, "meta", "m", nil, "metadata as key=value")
	historyAddCmd.Flags().BoolVar(&historyNoOCR, "no-ocr", false, "skip text indexing")
	historyAddCmd.Flags().IntVarP(&historyDisplay, "display", "d", 0, "display index when capturing")
	historyExportCmd.Flags().StringSliceVar(&historySheetIDs, "id", nil, "restrict the export to these entries")
	historyCmd.AddCommand(historyAddCmd, historySearchCmd, historyListCmd, historyRemoveCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, error) {
	dir := historyDir
	if dir == "" {
		var err error
		dir, err = history.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	opts := []history.Option{history.WithLogger(log)}
	if !historyNoOCR {
		opts = append(opts, history.WithRecognizer(func(ctx context.Context, shot *capture.Screenshot) (string, error) {
			input, err := ocr.FromScreenshot(shot, ocr.WithLanguages(cfg.OCR.Language))
			if err != nil {
				return "", err
			}
			result, err := ocr.DefaultEngine().Recognize(ctx, input)
			if err != nil {
				return "", err
			}
			return result.PlainText, nil
		}))
	}
	return history.Open(dir, opts...)
}

func runHistoryAdd(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}

	var shot *capture.Screenshot
	if len(args) > 0 {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		shot = importedScreenshot(img)
	} else {
		shot, err = capture.Display(historyDisplay)
		if err != nil {
			return err
		}
	}

	meta := make(map[string]string, len(historyMeta))
	for _, kv := range historyMeta {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("metadata %q must be key=value", kv)
		}
		meta[k] = v
	}

	entry, err := store.Add(cmd.Context(), shot, meta, historyTags)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), entry.ID)
	return nil
}

// importedScreenshot wraps a decoded file as a capture so the store can
// treat imports and live grabs the same way.
func importedScreenshot(img image.Image) *capture.Screenshot {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &capture.Screenshot{
		Image:      rgba,
		Monitor:    -1,
		Bounds:     rgba.Bounds(),
		CapturedAt: time.Now(),
	}
}

func printEntries(cmd *cobra.Command, entries []history.Entry) {
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  %dx%d", e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.Width, e.Height)
		if len(e.Tags) > 0 {
			line += "  [" + strings.Join(e.Tags, ",") + "]"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}
