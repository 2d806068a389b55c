package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/detect"
	"github.com/wudi/shotkit/diff"
)

var (
	detectWindows     bool
	detectAnnotateOut string
	detectScreen      bool
	detectDisplay     int
)

var detectCmd = &cobra.Command{
	Use:   "detect [input.png]",
	Short: "Find code panes or windows in a capture",
	Long: `Prints the bounding box of each region that looks like a code or
terminal pane. --windows looks for edge-outlined application windows
instead. --annotate writes a copy of the input with the regions
outlined. With --screen the input is a fresh capture instead of a
file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVarP(&detectWindows, "windows", "w", false, "detect application windows instead of code panes")
	detectCmd.Flags().StringVarP(&detectAnnotateOut, "annotate", "a", "", "write annotated copy of the input here")
	detectCmd.Flags().BoolVarP(&detectScreen, "screen", "s", false, "detect on a fresh capture instead of a file")
	detectCmd.Flags().IntVarP(&detectDisplay, "display", "d", 0, "display index with --screen")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	src, err := detectInput(args)
	if err != nil {
		return err
	}

	var regions []detect.Region
	if detectWindows {
		regions = detect.Windows(src)
	} else {
		regions = detect.CodeRegions(src)
	}
	if len(regions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no regions")
		return nil
	}
	for _, r := range regions {
		if detectWindows {
			fmt.Fprintf(cmd.OutOrStdout(), "%d,%d %dx%d\n", r.Bounds.Min.X, r.Bounds.Min.Y, r.Bounds.Dx(), r.Bounds.Dy())
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d,%d %dx%d confidence %.1f\n", r.Bounds.Min.X, r.Bounds.Min.Y, r.Bounds.Dx(), r.Bounds.Dy(), r.Confidence)
	}
	if detectAnnotateOut != "" {
		if err := saveImage(diff.Annotate(src, detect.Bounds(regions)), detectAnnotateOut); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), detectAnnotateOut)
	}
	return nil
}

func detectInput(args []string) (image.Image, error) {
	if detectScreen {
		shot, err := capture.Display(detectDisplay)
		if err != nil {
			return nil, err
		}
		return shot.Image, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("an input file or --screen is required")
	}
	return loadImage(args[0])
}
