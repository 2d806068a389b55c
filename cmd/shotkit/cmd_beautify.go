package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/beautify"
)

var (
	beautifyTheme   string
	beautifyPadding int
	beautifyShadow  float64
	beautifyStyle   string
	beautifyRadius  int
	beautifyBG      string
)

var beautifyCmd = &cobra.Command{
	Use:   "beautify <input.png> <output.png>",
	Short: "Frame a screenshot with window chrome and a themed background",
	Long: fmt.Sprintf(`Wraps the screenshot in a rounded window with traffic-light or
caption-button chrome, a drop shadow, and a themed backdrop.

Themes: %s`, strings.Join(beautify.ThemeNames(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runBeautify,
}

func init() {
	beautifyCmd.Flags().StringVarP(&beautifyTheme, "theme", "t", "", "color theme (default from config)")
	beautifyCmd.Flags().IntVarP(&beautifyPadding, "padding", "p", 60, "padding around the window")
	beautifyCmd.Flags().Float64VarP(&beautifyShadow, "shadow", "s", 0.5, "shadow intensity 0..1")
	beautifyCmd.Flags().StringVar(&beautifyStyle, "style", "", "window chrome: macos, windows, linux, none")
	beautifyCmd.Flags().IntVar(&beautifyRadius, "radius", 10, "corner radius")
	beautifyCmd.Flags().StringVarP(&beautifyBG, "background", "b", string(beautify.BackgroundGradient), "gradient, solid, or transparent")
	rootCmd.AddCommand(beautifyCmd)
}

func runBeautify(cmd *cobra.Command, args []string) error {
	theme := beautifyTheme
	if theme == "" {
		theme = cfg.Beautifier.Theme
	}
	style := beautifyStyle
	if style == "" {
		style = cfg.Beautifier.WindowStyle
	}

	opts := beautify.DefaultOptions()
	opts.Padding = beautifyPadding
	opts.ShadowIntensity = beautifyShadow
	opts.CornerRadius = beautifyRadius
	opts.WindowStyle = beautify.WindowStyle(style)
	opts.Background = beautify.Background(beautifyBG)

	b, err := beautify.New(theme, opts)
	if err != nil {
		return err
	}
	img, err := loadImage(args[0])
	if err != nil {
		return err
	}
	if err := saveImage(b.Render(img), args[1]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), args[1])
	return nil
}
