package glint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode identifies how a Color is addressed on the terminal.
type ColorMode uint8

const (
	// ColorModeDefault is the terminal's own default color.
	ColorModeDefault ColorMode = iota
	// ColorModeStandard is one of the 16 named ANSI colors.
	ColorModeStandard
	// ColorModeEightBit is a 256-palette index.
	ColorModeEightBit
	// ColorModeTrueColor is a 24-bit RGB color.
	ColorModeTrueColor
)

// Color is a terminal color. The zero value is the terminal default.
type Color struct {
	Mode   ColorMode
	Number uint8 // palette index for Standard/EightBit
	R      uint8
	G      uint8
	B      uint8
}

// DefaultColor is the terminal's own foreground/background color.
var DefaultColor = Color{}

// StandardColor returns one of the 16 named ANSI colors (0–15).
func StandardColor(n uint8) Color {
	return Color{Mode: ColorModeStandard, Number: n & 0x0f}
}

// EightBitColor returns a color from the 256-color palette.
func EightBitColor(n uint8) Color {
	return Color{Mode: ColorModeEightBit, Number: n}
}

// RGBColor returns a 24-bit color.
func RGBColor(r, g, b uint8) Color {
	return Color{Mode: ColorModeTrueColor, R: r, G: g, B: b}
}

// colorNames maps style-definition tokens to standard palette indexes.
var colorNames = map[string]uint8{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"grey":           8,
	"gray":           8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
}

// standardColorNames is the reverse of colorNames for canonical output.
var standardColorNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// ParseColor parses a single color token: a name ("red",
// "bright_blue"), "default", a palette index "color(123)", a hex
// triplet "#ff8800", or "rgb(255,136,0)".
func ParseColor(token string) (Color, error) {
	lower := strings.ToLower(token)
	if lower == "default" {
		return DefaultColor, nil
	}
	if n, ok := colorNames[lower]; ok {
		return StandardColor(n), nil
	}
	if strings.HasPrefix(lower, "color(") && strings.HasSuffix(lower, ")") {
		body := lower[len("color(") : len(lower)-1]
		n, err := strconv.Atoi(body)
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("palette index must be 0-255, got %q", body)
		}
		return EightBitColor(uint8(n)), nil
	}
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		body := lower[len("rgb(") : len(lower)-1]
		parts := strings.Split(body, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("rgb() takes three components, got %q", body)
		}
		var vals [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return Color{}, fmt.Errorf("rgb component must be 0-255, got %q", p)
			}
			vals[i] = uint8(n)
		}
		return RGBColor(vals[0], vals[1], vals[2]), nil
	}
	if strings.HasPrefix(lower, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return Color{}, fmt.Errorf("bad hex color %q", token)
		}
		r, g, b := c.RGB255()
		return RGBColor(r, g, b), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", token)
}

// String returns the canonical token form, re-parseable by ParseColor.
func (c Color) String() string {
	switch c.Mode {
	case ColorModeStandard:
		return standardColorNames[c.Number&0x0f]
	case ColorModeEightBit:
		return fmt.Sprintf("color(%d)", c.Number)
	case ColorModeTrueColor:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool { return c.Mode == ColorModeDefault }

// appendSGR appends the SGR parameters selecting this color to params.
// background selects the 40/48-series codes instead of 30/38.
func (c Color) appendSGR(params []string, background bool) []string {
	base := 30
	if background {
		base = 40
	}
	switch c.Mode {
	case ColorModeDefault:
		return append(params, strconv.Itoa(base+9))
	case ColorModeStandard:
		n := int(c.Number)
		if n < 8 {
			return append(params, strconv.Itoa(base+n))
		}
		// Bright variants use the 90/100 series.
		return append(params, strconv.Itoa(base+60+n-8))
	case ColorModeEightBit:
		return append(params, strconv.Itoa(base+8), "5", strconv.Itoa(int(c.Number)))
	default:
		return append(params,
			strconv.Itoa(base+8), "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	}
}

// standardRGB maps the 16 standard colors to representative RGB values
// (the xterm defaults), used when blending non-truecolor colors.
var standardRGB = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// rgb upconverts any color to truecolor components. Default maps to
// white so blends against the terminal default stay visible.
func (c Color) rgb() (uint8, uint8, uint8) {
	switch c.Mode {
	case ColorModeStandard:
		v := standardRGB[c.Number&0x0f]
		return v[0], v[1], v[2]
	case ColorModeEightBit:
		n := int(c.Number)
		if n < 16 {
			v := standardRGB[n]
			return v[0], v[1], v[2]
		}
		if n < 232 {
			// 6x6x6 color cube.
			n -= 16
			steps := [6]uint8{0, 95, 135, 175, 215, 255}
			return steps[n/36], steps[(n/6)%6], steps[n%6]
		}
		// Grayscale ramp.
		g := uint8(8 + (n-232)*10)
		return g, g, g
	case ColorModeTrueColor:
		return c.R, c.G, c.B
	default:
		return 255, 255, 255
	}
}

// Blend mixes c toward other by t in [0, 1], returning a truecolor
// result. t=0 yields c, t=1 yields other.
func (c Color) Blend(other Color, t float64) Color {
	r1, g1, b1 := c.rgb()
	r2, g2, b2 := other.rgb()
	a := colorful.Color{R: float64(r1) / 255, G: float64(g1) / 255, B: float64(b1) / 255}
	b := colorful.Color{R: float64(r2) / 255, G: float64(g2) / 255, B: float64(b2) / 255}
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	return RGBColor(r, g, bl)
}
