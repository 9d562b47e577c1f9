package glint

import "github.com/charmbracelet/x/ansi"

// VisibleWidth returns the display width in cells of an encoded string,
// ignoring escape sequences and accounting for wide characters. Useful
// for inspecting EncodeLine output, which interleaves styling sequences
// with text.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// StripSequences removes all escape sequences from an encoded string,
// leaving only the visible text.
func StripSequences(s string) string {
	return ansi.Strip(s)
}

// TruncateVisible truncates an encoded string to at most maxWidth
// visible cells, appending tail if anything was cut. Escape sequences
// are preserved and do not count toward the width.
func TruncateVisible(s string, maxWidth int, tail string) string {
	return ansi.Truncate(s, maxWidth, tail)
}
