package glint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestConsoleRenderSegments(t *testing.T) {
	console := NewConsole()

	segments, err := console.Render(NewSegment("hello", nil), NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "hello", segments[0].Text)
}

func TestConsoleAncestorStyle(t *testing.T) {
	console := NewConsole()

	inner := NewSegment("hi", MustParseStyle("bold"))
	wrapped := NewStyled(NewGroup(inner), MustParseStyle("italic red"))

	segments, err := console.Render(wrapped, NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, segments, 1)

	style := segments[0].Style
	require.NotNil(t, style)
	assert.True(t, style.HasBold())
	assert.True(t, style.HasItalic())
	fg, ok := style.ForegroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(1), fg)
}

func TestConsoleStyledPointer(t *testing.T) {
	console := NewConsole()

	// The pointer form composes the ancestor style the same as the
	// value form.
	wrapped := &Styled{Content: NewSegment("x", nil), Style: MustParseStyle("red")}

	segments, err := console.Render(wrapped, NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.NotNil(t, segments[0].Style)
	fg, ok := segments[0].Style.ForegroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(1), fg)
}

func TestConsoleNestedStyledOverride(t *testing.T) {
	console := NewConsole()

	// The inner wrapper's color wins over the outer one.
	r := NewStyled(NewStyled(NewSegment("x", nil), MustParseStyle("green")), MustParseStyle("red"))

	segments, err := console.Render(r, NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, segments, 1)
	fg, ok := segments[0].Style.ForegroundColor()
	require.True(t, ok)
	assert.Equal(t, StandardColor(2), fg)
}

func TestConsoleOrderPreserved(t *testing.T) {
	console := NewConsole()

	r := NewGroup(Plain("one"), Plain("two"), Plain("three"))
	lines, err := console.RenderLines(r, NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "one", joinText(lines[0]))
	assert.Equal(t, "two", joinText(lines[1]))
	assert.Equal(t, "three", joinText(lines[2]))
}

// loopRenderable yields itself forever.
type loopRenderable struct{}

func (l loopRenderable) Render(RenderOptions) []Renderable {
	return []Renderable{l}
}

func TestConsoleRenderLoop(t *testing.T) {
	console := NewConsole()

	_, err := console.Render(loopRenderable{}, NewRenderOptions(20))
	require.Error(t, err)
	var loopErr *RenderLoopError
	require.ErrorAs(t, err, &loopErr)
	assert.Equal(t, DefaultMaxDepth, loopErr.Depth)
}

func TestConsoleMaxDepthOverride(t *testing.T) {
	console := &Console{MaxDepth: 4}

	_, err := console.Render(loopRenderable{}, NewRenderOptions(20))
	var loopErr *RenderLoopError
	require.ErrorAs(t, err, &loopErr)
	assert.Equal(t, 4, loopErr.Depth)
}

func TestConsoleOverflowFold(t *testing.T) {
	console := NewConsole()

	opts := NewRenderOptions(4).WithOverflow(OverflowFold)
	lines, err := console.RenderLines(NewSegment("abcdefghij", nil), opts)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "abcd", joinText(lines[0]))
	assert.Equal(t, "efgh", joinText(lines[1]))
	assert.Equal(t, "ij", joinText(lines[2]))
}

func TestConsoleOverflowCrop(t *testing.T) {
	console := NewConsole()

	opts := NewRenderOptions(4).WithOverflow(OverflowCrop)
	lines, err := console.RenderLines(NewSegment("abcdefghij", nil), opts)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "abcd", joinText(lines[0]))
}

func TestConsoleOverflowEllipsis(t *testing.T) {
	console := NewConsole()

	opts := NewRenderOptions(4).WithOverflow(OverflowEllipsis)
	lines, err := console.RenderLines(NewSegment("abcdefghij", nil), opts)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "abc…", joinText(lines[0]))
}

func TestConsoleOverflowIgnore(t *testing.T) {
	console := NewConsole()

	opts := NewRenderOptions(4).WithOverflow(OverflowIgnore)
	lines, err := console.RenderLines(NewSegment("abcdefghij", nil), opts)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "abcdefghij", joinText(lines[0]))
}

func TestConsoleLinesNeverExceedWidth(t *testing.T) {
	console := NewConsole()

	inputs := []Renderable{
		NewSegment("the quick brown fox jumps over the lazy dog", nil),
		NewSegment("日本語のテキストも折り返されます", nil),
		NewGroup(Plain("short"), NewSegment(strings.Repeat("x", 100), nil)),
	}
	for _, overflow := range []Overflow{OverflowFold, OverflowCrop, OverflowEllipsis} {
		for _, r := range inputs {
			for _, width := range []int{2, 4, 7, 10} {
				opts := NewRenderOptions(width).WithOverflow(overflow)
				lines, err := console.RenderLines(r, opts)
				require.NoError(t, err)
				for _, line := range lines {
					assert.LessOrEqual(t, lineCellLength(line), width,
						"overflow %d width %d line %q", overflow, width, joinText(line))
				}
			}
		}
	}
}

func TestConsoleMaxHeight(t *testing.T) {
	console := NewConsole()

	r := NewGroup(Plain("a"), Plain("b"), Plain("c"), Plain("d"))
	lines, err := console.RenderLines(r, NewRenderOptions(20).WithMaxHeight(2))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "a", joinText(lines[0]))
	assert.Equal(t, "b", joinText(lines[1]))
}

func TestConsoleJustify(t *testing.T) {
	console := NewConsole()

	for _, tc := range []struct {
		justify Justify
		want    string
	}{
		{JustifyLeft, "ab        "},
		{JustifyRight, "        ab"},
		{JustifyCenter, "    ab    "},
	} {
		opts := NewRenderOptions(10).WithJustify(tc.justify)
		lines, err := console.RenderLines(NewSegment("ab", nil), opts)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, tc.want, joinText(lines[0]), "justify %d", tc.justify)
	}
}

func TestColumnsLayout(t *testing.T) {
	console := NewConsole()

	cols := NewColumns(Plain("aa"), Plain("bb"))
	lines, err := console.RenderLines(cols, NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "aa bb", joinText(lines[0]))
}

func TestColumnsUnevenHeights(t *testing.T) {
	console := NewConsole()

	cols := NewColumns(NewText("a\nb\nc", nil), Plain("x"))
	lines, err := console.RenderLines(cols, NewRenderOptions(20))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "a x", joinText(lines[0]))
	// Short columns pad out; the last column does not.
	assert.Equal(t, "b ", joinText(lines[1]))
	assert.Equal(t, "c ", joinText(lines[2]))
}

func TestColumnsSqueeze(t *testing.T) {
	console := NewConsole()

	cols := NewColumns(
		Plain("the quick brown fox"),
		Plain("jumps over the lazy dog"),
	)
	lines, err := console.RenderLines(cols, NewRenderOptions(20))
	require.NoError(t, err)
	for _, line := range lines {
		assert.LessOrEqual(t, lineCellLength(line), 20)
	}
}

func TestConsoleGolden(t *testing.T) {
	console := NewConsole()

	r := NewGroup(
		Plain("alpha beta gamma"),
		NewText("wrapped line here", nil),
	)
	lines, err := console.RenderLines(r, NewRenderOptions(10))
	require.NoError(t, err)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(EncodeLine(line))
		b.WriteString("\n")
	}
	golden.Assert(t, b.String(), "wrap.golden")
}
