package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/observability"
	"github.com/wudi/shotkit/share"
)

var (
	captureDisplay   int
	captureRegion    string
	captureAll       bool
	captureClipboard bool
	captureCursor    bool
)

var captureCmd = &cobra.Command{
	Use:   "capture [output.png]",
	Short: "Grab the screen to a PNG",
	Long: `Grabs the primary display by default. Use --display for another
monitor, --region for an arbitrary rectangle in virtual-desktop
coordinates, or --all to save every monitor as output-0.png,
output-1.png, and so on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().IntVarP(&captureDisplay, "display", "d", 0, "display index")
	captureCmd.Flags().StringVarP(&captureRegion, "region", "r", "", "region as x,y,w,h")
	captureCmd.Flags().BoolVarP(&captureAll, "all", "a", false, "capture every display")
	captureCmd.Flags().BoolVarP(&captureClipboard, "clipboard", "c", false, "also copy a data URL to the clipboard")
	captureCmd.Flags().BoolVar(&captureCursor, "cursor", false, "include the mouse cursor (no native backend composites the cursor; the flag is accepted and ignored)")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	output := defaultOutputName(args, "screenshot", "png")
	if captureCursor {
		log.Warn("cursor compositing is not supported by the capture backends; ignoring --cursor")
	}

	if captureAll {
		shots, err := capture.All()
		if err != nil {
			return err
		}
		for _, shot := range shots {
			path := numberedName(output, shot.Monitor)
			if err := shot.SavePNG(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	}

	var shot *capture.Screenshot
	var err error
	start := time.Now()
	if captureRegion != "" {
		rect, perr := parseRegion(captureRegion)
		if perr != nil {
			return perr
		}
		shot, err = capture.Region(rect)
	} else {
		shot, err = capture.Display(captureDisplay)
	}
	if err != nil {
		return err
	}
	log.Debug("captured frame",
		observability.Int("width", shot.Width()),
		observability.Int("height", shot.Height()),
		observability.Int("ms", int(time.Since(start).Milliseconds())))

	if err := shot.SavePNG(output); err != nil {
		return err
	}
	if captureClipboard {
		if err := share.CopyDataURL(shot.Image); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// defaultOutputName returns args[0] or a timestamped fallback.
func defaultOutputName(args []string, stem, ext string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fmt.Sprintf("%s_%s.%s", stem, time.Now().Format("20060102_150405"), ext)
}

// numberedName turns shot.png into shot-2.png.
func numberedName(path string, n int) string {
	dot := len(path)
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			dot = i
			break
		}
		if path[i] == '/' {
			break
		}
	}
	return fmt.Sprintf("%s-%d%s", path[:dot], n, path[dot:])
}
