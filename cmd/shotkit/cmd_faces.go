package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/faces"
	"github.com/wudi/shotkit/observability"
)

var (
	facesCascade  string
	facesStrength float64
	facesExpand   float64
)

var facesCmd = &cobra.Command{
	Use:   "faces <input.png> <output.png>",
	Short: "Detect and blur faces",
	Long: `Detects faces with a pixel-intensity cascade classifier and blurs
each detection. --cascade points at the binary cascade file (the
facefinder model from the pigo project works).`,
	Args: cobra.ExactArgs(2),
	RunE: runFaces,
}

func init() {
	facesCmd.Flags().StringVar(&facesCascade, "cascade", "facefinder", "cascade classifier file")
	facesCmd.Flags().Float64VarP(&facesStrength, "strength", "s", 30, "blur strength")
	facesCmd.Flags().Float64VarP(&facesExpand, "expand", "e", 1.2, "grow each detection by this factor before blurring")
	rootCmd.AddCommand(facesCmd)
}

func runFaces(cmd *cobra.Command, args []string) error {
	detector, err := faces.NewDetector(facesCascade)
	if err != nil {
		return err
	}
	img, err := loadImage(args[0])
	if err != nil {
		return err
	}
	out, n := detector.BlurFaces(img, facesStrength, facesExpand)
	log.Info("face pass complete", observability.Int(observability.MetricFacesFound, n))
	if err := saveImage(out, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d face(s) blurred\n", args[1], n)
	return nil
}
