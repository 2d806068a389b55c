package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/diff"
)

var (
	diffThreshold   float64
	diffAnnotateOut string
	diffPerceptual  bool
	diffMaxDistance int
)

var diffCmd = &cobra.Command{
	Use:   "diff <before.png> <after.png>",
	Short: "Show what changed between two captures",
	Long: `Prints the bounding box of each changed region. --annotate writes a
copy of the second image with the regions outlined. --perceptual
compares whole-image perceptual hashes instead, for near-duplicate
detection across resizes and re-encodes.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().Float64VarP(&diffThreshold, "threshold", "t", 0.1, "per-pixel sensitivity 0..1")
	diffCmd.Flags().StringVarP(&diffAnnotateOut, "annotate", "a", "", "write annotated copy of the second image here")
	diffCmd.Flags().BoolVarP(&diffPerceptual, "perceptual", "p", false, "compare perceptual hashes")
	diffCmd.Flags().IntVar(&diffMaxDistance, "max-distance", 10, "hamming distance considered similar with --perceptual")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	before, err := loadImage(args[0])
	if err != nil {
		return err
	}
	after, err := loadImage(args[1])
	if err != nil {
		return err
	}

	if diffPerceptual {
		d, err := diff.Distance(before, after)
		if err != nil {
			return err
		}
		verdict := "different"
		if d <= diffMaxDistance {
			verdict = "similar"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "distance %d (%s)\n", d, verdict)
		return nil
	}

	regions, err := diff.Regions(before, after, diffThreshold)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no changes")
		return nil
	}
	for _, r := range regions {
		fmt.Fprintf(cmd.OutOrStdout(), "%d,%d %dx%d\n", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	}
	if diffAnnotateOut != "" {
		if err := saveImage(diff.Annotate(after, regions), diffAnnotateOut); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), diffAnnotateOut)
	}
	return nil
}
