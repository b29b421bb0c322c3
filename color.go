package quadrant

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is the canonical fully opaque RGB color used everywhere after
// normalization. Any alpha the input notation carries is discarded;
// rendering assumes solid fills.
type Color struct {
	R, G, B uint8
}

// Predefined colors.
var (
	ColorBlack = Color{0x00, 0x00, 0x00}
	ColorWhite = Color{0xFF, 0xFF, 0xFF}
	ColorRed   = Color{0xFF, 0x00, 0x00}
	ColorGreen = Color{0x00, 0xFF, 0x00}
	ColorBlue  = Color{0x00, 0x00, 0xFF}
)

// Hex returns the canonical 6-digit lower-case form, e.g. "#aabbcc".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// rgba converts to an opaque image/color value for drawing.
func (c Color) rgba() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

var rgbFuncRe = regexp.MustCompile(`^rgba?\((.*)\)$`)

// NormalizeColor parses a color token into canonical opaque RGB. It
// never fails: any unparseable input, empty input included, yields def.
//
// Accepted notations:
//   - hex, 3 or 6 digits, with or without '#', any case, stray
//     whitespace anywhere (spreadsheet cells may contain line breaks);
//   - rgb(...)/rgba(...), components either 0-255 numbers or "n%"
//     (0-100), each clamped independently; an alpha component is
//     parsed but discarded;
//   - CSS color names ("red", "navy", ...).
func NormalizeColor(raw string, def Color) Color {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(raw))
	if s == "" {
		return def
	}

	if m := rgbFuncRe.FindStringSubmatch(s); m != nil {
		if c, ok := parseRGBComponents(m[1]); ok {
			return c
		}
		return def
	}

	// Tolerate bare hex.
	if n := len(s); (n == 3 || n == 6) && s[0] != '#' {
		s = "#" + s
	}

	// Only 3- and 6-digit forms are valid; Sscanf-based hex parsing
	// would otherwise accept longer strings with trailing garbage.
	if (len(s) == 4 || len(s) == 7) && s[0] == '#' {
		if c, err := colorful.Hex(s); err == nil {
			r, g, b := c.RGB255()
			return Color{R: r, G: g, B: b}
		}
	}
	if hex, ok := namedColors[strings.TrimPrefix(s, "#")]; ok {
		c, _ := colorful.Hex(hex)
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b}
	}
	return def
}

// parseRGBComponents parses the comma-separated interior of an
// rgb()/rgba() expression. Whitespace has already been stripped.
func parseRGBComponents(inner string) (Color, bool) {
	parts := strings.Split(inner, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(parts[i])
		if !ok {
			return Color{}, false
		}
		ch[i] = v
	}
	// Alpha is validated but not kept: the canonical color is opaque.
	if len(parts) == 4 {
		if _, ok := parseChannel(parts[3]); !ok {
			return Color{}, false
		}
	}

	c := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, true
}

// parseChannel parses one component, either a 0-255 number or a
// percentage, clamped to its range and normalized to [0, 1].
func parseChannel(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clamp(v, 0, 100) / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clamp(v, 0, 255) / 255, true
}

// namedColors maps CSS color names to their hex form. The set covers
// the CSS Level 1 names plus the handful of synonyms that show up in
// real spreadsheets.
var namedColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"magenta": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
	"cyan":    "#00ffff",
	"orange":  "#ffa500",
}
