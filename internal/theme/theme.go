// Package theme holds the board colour palettes.
package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme is one of the built-in palettes.
type Theme int

const (
	Classic Theme = iota
	Dark
	Pastel
	Neon
)

// Themes lists every theme in cycling order.
var Themes = [...]Theme{Classic, Dark, Pastel, Neon}

// FallbackTile colours tiles above 2048.
const FallbackTile = "#E57373"

// Palette is the colour set of a theme. Colours are "#rrggbb" strings.
type Palette struct {
	Name      string
	BoardBG   string
	CellBG    string
	TextLight string
	TextDark  string
	Tiles     map[int]string

	// Without AutoContrast, tiles up to DarkTextMax use TextDark.
	DarkTextMax  int
	AutoContrast bool
}

var palettes = [...]Palette{
	Classic: {
		Name:        "classic",
		BoardBG:     "#bbada0",
		CellBG:      "#cdc1b4",
		TextLight:   "#f9f6f2",
		TextDark:    "#776e65",
		DarkTextMax: 4,
		Tiles: map[int]string{
			2: "#eee4da", 4: "#ede0c8", 8: "#f2b179", 16: "#f59563", 32: "#f67c5f", 64: "#f65e3b",
			128: "#edcf72", 256: "#edcc61", 512: "#edc850", 1024: "#edc53f", 2048: "#edc22e",
		},
	},
	Dark: {
		Name:        "dark",
		BoardBG:     "#1A232B",
		CellBG:      "#2A343D",
		TextLight:   "#ECEFF1",
		TextDark:    "#ECEFF1",
		DarkTextMax: 8,
		Tiles: map[int]string{
			2: "#455A64", 4: "#546E7A", 8: "#26C6DA", 16: "#7E57C2", 32: "#FF7043", 64: "#FFA726",
			128: "#26A69A", 256: "#AB47BC", 512: "#42A5F5", 1024: "#66BB6A", 2048: "#FFEE58",
		},
	},
	Pastel: {
		Name:         "pastel",
		BoardBG:      "#F9F7F7",
		CellBG:       "#EAEAEA",
		TextLight:    "#5D5A5A",
		TextDark:     "#5D5A5A",
		DarkTextMax:  8,
		AutoContrast: true,
		Tiles: map[int]string{
			2: "#FDE2E4", 4: "#E2ECE9", 8: "#E9F5DB", 16: "#FAD2E1", 32: "#BEE1E6", 64: "#CDE7BE",
			128: "#FAF3DD", 256: "#D0F4DE", 512: "#D7E3FC", 1024: "#F1C0E8", 2048: "#FFF3B0",
		},
	},
	Neon: {
		Name:         "neon",
		BoardBG:      "#0F1020",
		CellBG:       "#1B1D36",
		TextLight:    "#FFFFFF",
		TextDark:     "#0F1020",
		DarkTextMax:  8,
		AutoContrast: true,
		Tiles: map[int]string{
			2: "#39FF14", 4: "#14FFEC", 8: "#FCEE09", 16: "#FF2079", 32: "#00F0FF", 64: "#FF6B6B",
			128: "#7CFFCB", 256: "#FFD93D", 512: "#B980F0", 1024: "#00E676", 2048: "#FFD700",
		},
	},
}

// Palette returns the theme's colours. Panics on an out-of-range value.
func (t Theme) Palette() Palette {
	if t < Classic || t > Neon {
		panic(fmt.Sprintf("theme: invalid theme %d", int(t)))
	}
	return palettes[t]
}

// String returns the theme name.
func (t Theme) String() string {
	if t < Classic || t > Neon {
		return "unknown"
	}
	return palettes[t].Name
}

// Next returns the following theme, wrapping around.
func (t Theme) Next() Theme {
	return Themes[(int(t)+1)%len(Themes)]
}

// TileColor returns the background colour of a tile.
func (t Theme) TileColor(value int) string {
	if c, ok := t.Palette().Tiles[value]; ok {
		return c
	}
	return FallbackTile
}

// TextColor returns the colour of the number drawn on a tile.
func (t Theme) TextColor(value int) string {
	p := t.Palette()
	if p.AutoContrast {
		if Luminance(t.TileColor(value)) > 0.6 {
			return p.TextDark
		}
		return p.TextLight
	}
	if value <= p.DarkTextMax {
		return p.TextDark
	}
	return p.TextLight
}

// Glow returns the tile colour blended towards white, used to highlight
// popping tiles.
func (t Theme) Glow(value int, amount float64) string {
	c, err := colorful.Hex(t.TileColor(value))
	if err != nil {
		return t.TileColor(value)
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendRgb(white, amount).Clamped().Hex()
}

// Luminance returns the WCAG relative luminance of a "#rrggbb" colour, or
// 0 if hex does not parse.
func Luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Parse resolves a theme name. Unknown names are an error.
func Parse(name string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range Themes {
		if palettes[t].Name == key {
			return t, nil
		}
	}
	return Classic, fmt.Errorf("theme: unknown theme %q (want classic, dark, pastel or neon)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	if t < Classic || t > Neon {
		return nil, fmt.Errorf("theme: invalid theme %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
