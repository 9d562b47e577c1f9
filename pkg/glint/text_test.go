package glint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWords(t *testing.T) {
	assert.Equal(t, []string{"hello"}, wrapWords("hello", 10))
	assert.Equal(t,
		[]string{"the quick", "brown fox"},
		wrapWords("the quick brown fox", 10))
	assert.Equal(t, []string{""}, wrapWords("", 10))
}

func TestWrapWordsHardSplit(t *testing.T) {
	assert.Equal(t,
		[]string{"abcde", "fghij", "kl"},
		wrapWords("abcdefghijkl", 5))

	// An oversized word mid-line starts fresh before splitting.
	assert.Equal(t,
		[]string{"hi", "abcde", "fgh"},
		wrapWords("hi abcdefgh", 5))
}

func TestWrapWordsWideChars(t *testing.T) {
	// 2-cell characters never straddle a split.
	assert.Equal(t, []string{"日本", "語だ"}, wrapWords("日本語だ", 4))
	assert.Equal(t, []string{"日", "本"}, wrapWords("日本", 2))
	// Width narrower than one character still terminates.
	assert.Equal(t, []string{"日", "本"}, wrapWords("日本", 1))
}

func TestTextRender(t *testing.T) {
	console := NewConsole()

	style := MustParseStyle("cyan")
	lines, err := console.RenderLines(NewText("the quick brown fox", style), NewRenderOptions(10))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "the quick", joinText(lines[0]))
	assert.Equal(t, "brown fox", joinText(lines[1]))
	for _, line := range lines {
		for _, seg := range line {
			assert.True(t, style.Equal(seg.Style))
		}
	}
}

func TestTextRespectsNewlines(t *testing.T) {
	console := NewConsole()

	lines, err := console.RenderLines(NewText("one\ntwo", nil), NewRenderOptions(40))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "one", joinText(lines[0]))
	assert.Equal(t, "two", joinText(lines[1]))
}

func TestTextNoWrap(t *testing.T) {
	console := NewConsole()

	opts := NewRenderOptions(5).WithNoWrap(true)
	lines, err := console.RenderLines(NewText("the quick brown fox", nil), opts)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	// NoWrap under fold truncates rather than spilling.
	assert.Equal(t, "the q", joinText(lines[0]))
}

func TestTextMeasure(t *testing.T) {
	m := NewText("hello wonderful world\nhi", nil).Measure(NewRenderOptions(80))
	assert.Equal(t, Measurement{Minimum: 9, Maximum: 21}, m)

	m = Plain("").Measure(NewRenderOptions(80))
	assert.Equal(t, Measurement{Minimum: 0, Maximum: 0}, m)
}
