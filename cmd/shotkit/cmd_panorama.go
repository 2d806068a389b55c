package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/capture"
	"github.com/wudi/shotkit/panorama"
)

var panoramaLayout string

var panoramaCmd = &cobra.Command{
	Use:   "panorama [output.png]",
	Short: "Stitch every monitor into one image",
	Long: `Captures all active displays and joins them. The compose layout
places each monitor at its true virtual-desktop position; stitch simply
lines them up left to right.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPanorama,
}

func init() {
	panoramaCmd.Flags().StringVarP(&panoramaLayout, "layout", "l", "compose", "compose or stitch")
	rootCmd.AddCommand(panoramaCmd)
}

func runPanorama(cmd *cobra.Command, args []string) error {
	output := defaultOutputName(args, "panorama", "png")
	shots, err := capture.All()
	if err != nil {
		return err
	}

	switch panoramaLayout {
	case "compose":
		out, err := panorama.Compose(shots)
		if err != nil {
			return err
		}
		if err := saveImage(out, output); err != nil {
			return err
		}
	case "stitch":
		out, err := panorama.Stitch(shots)
		if err != nil {
			return err
		}
		if err := saveImage(out, output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("layout %q must be compose or stitch", panoramaLayout)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
