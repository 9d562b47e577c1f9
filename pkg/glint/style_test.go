package glint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyleBasics(t *testing.T) {
	s, err := ParseStyle("bold red on blue")
	require.NoError(t, err)

	assert.True(t, s.HasBold())
	fg, ok := s.ForegroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(1), fg)
	bg, ok := s.BackgroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(4), bg)
}

func TestParseStyleNone(t *testing.T) {
	s, err := ParseStyle("none")
	require.NoError(t, err)
	assert.True(t, s.IsNull())
	assert.Same(t, NullStyle, s)
}

func TestParseStyleErrors(t *testing.T) {
	for _, def := range []string{
		"",
		"bogus",
		"red green",
		"on blue on red",
		"not",
		"not red",
		"on",
		"link",
		"none bold",
	} {
		_, err := parseStyleDefinition(def)
		require.Error(t, err, "definition %q", def)
		var syntaxErr *StyleSyntaxError
		require.ErrorAs(t, err, &syntaxErr, "definition %q", def)
		assert.Equal(t, def, syntaxErr.Definition)
	}
}

func TestParseStyleCacheIdentity(t *testing.T) {
	a := MustParseStyle("bold underline cyan")
	b := MustParseStyle("bold underline cyan")
	assert.Same(t, a, b)
}

func TestCombineIdentity(t *testing.T) {
	s := MustParseStyle("italic magenta")

	assert.Same(t, s, s.Combine(NullStyle))
	assert.Same(t, s, NullStyle.Combine(s))
	assert.Same(t, NullStyle, NullStyle.Combine(NullStyle))

	var nilStyle *Style
	assert.Same(t, s, nilStyle.Combine(s))
	assert.Same(t, NullStyle, nilStyle.Combine(nil))
}

func TestCombineOverlay(t *testing.T) {
	base := MustParseStyle("bold red on blue")
	top := MustParseStyle("green")

	out := base.Combine(top)
	fg, ok := out.ForegroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(2), fg)
	bg, ok := out.BackgroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(4), bg)
	assert.True(t, out.HasBold())

	// Neither operand is mutated.
	assert.Equal(t, "bold red on blue", base.String())
	assert.Equal(t, "green", top.String())
}

func TestCombineExplicitOff(t *testing.T) {
	bold := MustParseStyle("bold")
	notBold := MustParseStyle("not bold")

	out := bold.Combine(notBold)
	assert.False(t, out.HasBold())
	assert.Equal(t, "not bold", out.String())

	// The other direction re-enables it.
	assert.True(t, notBold.Combine(bold).HasBold())
}

func TestCombineRightmostWins(t *testing.T) {
	a := MustParseStyle("red")
	b := MustParseStyle("green")
	c := MustParseStyle("blue")

	out := a.Combine(b).Combine(c)
	fg, ok := out.ForegroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(4), fg)
}

func TestStyleStringCanonical(t *testing.T) {
	s, err := ParseStyle("on blue bold link https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "bold on blue link https://example.com", s.String())

	// Canonical form re-parses to an equal style.
	again, err := parseStyleDefinition(s.String())
	require.NoError(t, err)
	assert.True(t, s.Equal(again))
}

func TestStyleHash(t *testing.T) {
	a, err := parseStyleDefinition("bold red")
	require.NoError(t, err)
	b, err := parseStyleDefinition("bold red")
	require.NoError(t, err)
	require.NotSame(t, a, b)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), MustParseStyle("dim red").Hash())
	// Memoized: the second call returns the stored value.
	assert.Equal(t, a.Hash(), a.Hash())
}

func TestStyleEqual(t *testing.T) {
	assert.True(t, MustParseStyle("bold red").Equal(MustParseStyle("red bold")))
	assert.False(t, MustParseStyle("bold").Equal(MustParseStyle("not bold")))
	assert.True(t, NullStyle.Equal(nil))

	var nilStyle *Style
	assert.True(t, nilStyle.Equal(NullStyle))
}

func TestStyleRenderSGR(t *testing.T) {
	for _, tc := range []struct {
		def  string
		want string
	}{
		{"bold", "\x1b[1mx\x1b[0m"},
		{"not bold", "\x1b[22mx\x1b[0m"},
		{"red", "\x1b[31mx\x1b[0m"},
		{"bright_red", "\x1b[91mx\x1b[0m"},
		{"on blue", "\x1b[44mx\x1b[0m"},
		{"on bright_blue", "\x1b[104mx\x1b[0m"},
		{"color(100)", "\x1b[38;5;100mx\x1b[0m"},
		{"on color(100)", "\x1b[48;5;100mx\x1b[0m"},
		{"#ff8800", "\x1b[38;2;255;136;0mx\x1b[0m"},
		{"bold italic red", "\x1b[1;3;31mx\x1b[0m"},
	} {
		assert.Equal(t, tc.want, MustParseStyle(tc.def).Render("x"), "definition %q", tc.def)
	}

	assert.Equal(t, "x", NullStyle.Render("x"))
}

func TestStyleRenderHyperlink(t *testing.T) {
	s := MustParseStyle("blue link https://example.com")
	assert.Equal(t,
		"\x1b[34m\x1b]8;;https://example.com\x07x\x1b]8;;\x07\x1b[0m",
		s.Render("x"))
}

func TestStyleBuilders(t *testing.T) {
	s := NullStyle.Bold(true).Foreground(StandardColor(1)).Link("https://example.com")
	assert.Equal(t, "bold red link https://example.com", s.String())

	// Builders never mutate the receiver.
	assert.True(t, NullStyle.IsNull())

	link, ok := s.Hyperlink()
	require.True(t, ok)
	assert.Equal(t, "https://example.com", link)
}
