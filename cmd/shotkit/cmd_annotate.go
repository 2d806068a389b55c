package main

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/annotate"
)

var (
	annotateColor     string
	annotateThickness int
	annotateSize      float64
	annotateAlpha     float64
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Draw callouts onto a screenshot",
}

var annotateTextCmd = &cobra.Command{
	Use:   "text <input> <output> <x,y> <text...>",
	Short: "Draw text at a point",
	Args:  cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		at, err := parsePoint(args[2])
		if err != nil {
			return err
		}
		c, err := parseColor(annotateColor)
		if err != nil {
			return err
		}
		if c.A == 0 {
			c = color.NRGBA{R: 255, A: 255}
		}
		out, err := annotate.Text(img, strings.Join(args[3:], " "), at, annotateSize, c)
		if err != nil {
			return err
		}
		return saveImage(out, args[1])
	},
}

var annotateRectCmd = &cobra.Command{
	Use:   "rect <input> <output> <x,y,w,h>",
	Short: "Stroke a rectangle",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		rect, err := parseRegion(args[2])
		if err != nil {
			return err
		}
		style, err := annotateStyle()
		if err != nil {
			return err
		}
		return saveImage(annotate.Rectangle(img, rect, style), args[1])
	},
}

var annotateArrowCmd = &cobra.Command{
	Use:   "arrow <input> <output> <x1,y1> <x2,y2>",
	Short: "Draw an arrow between two points",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		start, err := parsePoint(args[2])
		if err != nil {
			return err
		}
		end, err := parsePoint(args[3])
		if err != nil {
			return err
		}
		style, err := annotateStyle()
		if err != nil {
			return err
		}
		return saveImage(annotate.Arrow(img, start, end, style), args[1])
	},
}

var annotateCircleCmd = &cobra.Command{
	Use:   "circle <input> <output> <x,y> <radius>",
	Short: "Stroke a circle (negative thickness fills it)",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		center, err := parsePoint(args[2])
		if err != nil {
			return err
		}
		radius, err := strconv.Atoi(args[3])
		if err != nil || radius <= 0 {
			return fmt.Errorf("radius %q must be a positive integer", args[3])
		}
		style, err := annotateStyle()
		if err != nil {
			return err
		}
		return saveImage(annotate.Circle(img, center, radius, style), args[1])
	},
}

var annotateHighlightCmd = &cobra.Command{
	Use:   "highlight <input> <output> <x,y,w,h>",
	Short: "Blend a translucent highlight over a region",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		rect, err := parseRegion(args[2])
		if err != nil {
			return err
		}
		c, err := parseColor(annotateColor)
		if err != nil {
			return err
		}
		return saveImage(annotate.Highlight(img, rect, c, annotateAlpha), args[1])
	},
}

func init() {
	annotateCmd.PersistentFlags().StringVarP(&annotateColor, "color", "c", "", "hex color like ff0000")
	annotateCmd.PersistentFlags().IntVarP(&annotateThickness, "thickness", "t", 2, "stroke thickness")
	annotateTextCmd.Flags().Float64Var(&annotateSize, "size", 20, "font size in points")
	annotateHighlightCmd.Flags().Float64Var(&annotateAlpha, "alpha", 0.3, "highlight opacity 0..1")
	annotateCmd.AddCommand(annotateTextCmd, annotateRectCmd, annotateArrowCmd, annotateCircleCmd, annotateHighlightCmd)
	rootCmd.AddCommand(annotateCmd)
}

func annotateStyle() (annotate.Style, error) {
	c, err := parseColor(annotateColor)
	if err != nil {
		return annotate.Style{}, err
	}
	style := annotate.DefaultStyle()
	style.Thickness = annotateThickness
	if c.A != 0 {
		style.Color = c
	}
	return style, nil
}

// parseColor parses rrggbb or #rrggbb; empty input yields the zero color
// so callers fall through to their defaults.
func parseColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q must be rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q must be rrggbb", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func parsePoint(s string) (image.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("point %q must be x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return image.Point{}, fmt.Errorf("point %q must be x,y", s)
	}
	return image.Pt(x, y), nil
}
