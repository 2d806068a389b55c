package beautify

import (
	"image/color"
	"sort"
)

// Theme holds the palette for a beautified screenshot: gradient endpoints,
// window panel fill, shadow tint, and the accent used for text overlays.
type Theme struct {
	Name     string
	BGStart  color.NRGBA
	BGEnd    color.NRGBA
	WindowBG color.NRGBA
	Shadow   color.NRGBA
	Text     color.NRGBA
}

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

var themes = map[string]Theme{
	"dracula": {
		Name:    "dracula",
		BGStart: rgb(40, 42, 54), BGEnd: rgb(68, 71, 90),
		WindowBG: rgb(40, 42, 54), Shadow: rgb(0, 0, 0), Text: rgb(248, 248, 242),
	},
	"monokai": {
		Name:    "monokai",
		BGStart: rgb(39, 40, 34), BGEnd: rgb(64, 66, 57),
		WindowBG: rgb(39, 40, 34), Shadow: rgb(0, 0, 0), Text: rgb(248, 248, 240),
	},
	"nord": {
		Name:    "nord",
		BGStart: rgb(46, 52, 64), BGEnd: rgb(59, 66, 82),
		WindowBG: rgb(46, 52, 64), Shadow: rgb(0, 0, 0), Text: rgb(236, 239, 244),
	},
	"solarized-light": {
		Name:    "solarized-light",
		BGStart: rgb(253, 246, 227), BGEnd: rgb(238, 232, 213),
		WindowBG: rgb(253, 246, 227), Shadow: rgb(101, 123, 131), Text: rgb(101, 123, 131),
	},
	"solarized-dark": {
		Name:    "solarized-dark",
		BGStart: rgb(0, 43, 54), BGEnd: rgb(7, 54, 66),
		WindowBG: rgb(0, 43, 54), Shadow: rgb(0, 0, 0), Text: rgb(131, 148, 150),
	},
	"github-light": {
		Name:    "github-light",
		BGStart: rgb(255, 255, 255), BGEnd: rgb(246, 248, 250),
		WindowBG: rgb(255, 255, 255), Shadow: rgb(149, 157, 165), Text: rgb(36, 41, 46),
	},
	"github-dark": {
		Name:    "github-dark",
		BGStart: rgb(13, 17, 23), BGEnd: rgb(22, 27, 34),
		WindowBG: rgb(13, 17, 23), Shadow: rgb(0, 0, 0), Text: rgb(201, 209, 217),
	},
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
