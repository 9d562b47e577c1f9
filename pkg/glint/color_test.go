package glint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		token string
		want  Color
	}{
		{"default", DefaultColor},
		{"red", StandardColor(1)},
		{"RED", StandardColor(1)},
		{"bright_blue", StandardColor(12)},
		{"grey", StandardColor(8)},
		{"gray", StandardColor(8)},
		{"color(0)", EightBitColor(0)},
		{"color(255)", EightBitColor(255)},
		{"rgb(255,136,0)", RGBColor(255, 136, 0)},
		{"rgb(0, 0, 0)", RGBColor(0, 0, 0)},
		{"#ff8800", RGBColor(255, 136, 0)},
		{"#FF8800", RGBColor(255, 136, 0)},
	} {
		got, err := ParseColor(tc.token)
		require.NoError(t, err, "token %q", tc.token)
		assert.Equal(t, tc.want, got, "token %q", tc.token)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, token := range []string{
		"",
		"reddish",
		"color(256)",
		"color(-1)",
		"color(x)",
		"rgb(1,2)",
		"rgb(1,2,300)",
		"#ff88",
		"#zzzzzz",
	} {
		_, err := ParseColor(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for _, c := range []Color{
		DefaultColor,
		StandardColor(1),
		StandardColor(12),
		EightBitColor(100),
		RGBColor(255, 136, 0),
	} {
		again, err := ParseColor(c.String())
		require.NoError(t, err, "color %v", c)
		assert.Equal(t, c, again)
	}
}

func TestColorRGBUpconvert(t *testing.T) {
	r, g, b := StandardColor(1).rgb()
	assert.Equal(t, [3]uint8{205, 0, 0}, [3]uint8{r, g, b})

	// 6x6x6 cube corners.
	r, g, b = EightBitColor(16).rgb()
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
	r, g, b = EightBitColor(231).rgb()
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	// Grayscale ramp.
	r, g, b = EightBitColor(232).rgb()
	assert.Equal(t, [3]uint8{8, 8, 8}, [3]uint8{r, g, b})
}

func TestColorBlend(t *testing.T) {
	red := RGBColor(255, 0, 0)
	blue := RGBColor(0, 0, 255)

	assert.Equal(t, red, red.Blend(blue, 0))
	assert.Equal(t, blue, red.Blend(blue, 1))

	mid := red.Blend(blue, 0.5)
	assert.Equal(t, ColorModeTrueColor, mid.Mode)
	assert.InDelta(t, 127, int(mid.R), 2)
	assert.InDelta(t, 127, int(mid.B), 2)
}
