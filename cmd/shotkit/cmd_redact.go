package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/observability"
	"github.com/wudi/shotkit/ocr"
	"github.com/wudi/shotkit/redact"
)

var (
	redactMode     string
	redactTypes    []string
	redactTemplate string
	redactStrength float64
)

var redactCmd = &cobra.Command{
	Use:   "redact <input.png> <output.png>",
	Short: "Blur, pixelate, or block out sensitive text",
	Long: `Runs OCR over the image, matches each word against the sensitive-data
patterns (email, phone, credit card, SSN by default), and redacts the
matching regions. --template swaps in a compliance pattern set
(medical, financial, government, corporate, gdpr).`,
	Args: cobra.ExactArgs(2),
	RunE: runRedact,
}

func init() {
	redactCmd.Flags().StringVarP(&redactMode, "mode", "m", string(redact.ModeBlur), "blur, pixelate, block, or generate")
	redactCmd.Flags().StringSliceVarP(&redactTypes, "types", "t", nil, "pattern names to match (default: all)")
	redactCmd.Flags().StringVar(&redactTemplate, "template", "", "compliance template")
	redactCmd.Flags().Float64VarP(&redactStrength, "strength", "s", 15, "blur/pixelate strength")
	rootCmd.AddCommand(redactCmd)
}

func runRedact(cmd *cobra.Command, args []string) error {
	opts := []redact.Option{redact.WithStrength(redactStrength)}
	if redactTemplate != "" {
		opts = append(opts, redact.WithTemplate(redactTemplate))
	}
	if len(redactTypes) > 0 {
		opts = append(opts, redact.WithPatternTypes(redactTypes...))
	}
	redactor, err := redact.NewRedactor(redact.Mode(redactMode), opts...)
	if err != nil {
		return err
	}

	img, err := loadImage(args[0])
	if err != nil {
		return err
	}
	input, err := fileInput(args[0], cfg.OCR.Language)
	if err != nil {
		return err
	}
	result, err := ocr.DefaultEngine().Recognize(cmd.Context(), input)
	if err != nil {
		return err
	}

	out, n := redactor.Apply(img, result.Words())
	log.Info("redacted regions",
		observability.Int(observability.MetricRedactionCount, n))
	if err := saveImage(out, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d region(s) redacted\n", args[1], n)
	return nil
}
