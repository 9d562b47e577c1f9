package glint

import "strings"

// Control marks a Segment as something other than plain text.
type Control uint8

const (
	// ControlNone is a plain text run.
	ControlNone Control = iota
	// ControlLineBreak ends the current logical line.
	ControlLineBreak
	// ControlCode is a raw escape sequence: emitted verbatim and
	// contributing zero display width regardless of text length.
	ControlCode
)

// Segment is the atomic unit of rendered output: a text run, the style
// to draw it in, and an optional control marker. Segments are
// immutable values, produced by renderables and consumed strictly in
// emission order.
type Segment struct {
	Text    string
	Style   *Style
	Control Control
}

// LineBreak is the shared end-of-line segment.
var LineBreak = Segment{Text: "\n", Control: ControlLineBreak}

// NewSegment returns a text segment. style may be nil for unstyled text.
func NewSegment(text string, style *Style) Segment {
	return Segment{Text: text, Style: style}
}

// ControlSegment returns a zero-width segment carrying a raw escape
// sequence.
func ControlSegment(text string) Segment {
	return Segment{Text: text, Control: ControlCode}
}

// CellLength returns the display width of the segment in terminal
// cells. Control codes are always zero cells wide.
func (s Segment) CellLength() int {
	if s.Control == ControlCode {
		return 0
	}
	return CellLength(s.Text)
}

// WithStyle returns a copy of the segment drawn in style.
func (s Segment) WithStyle(style *Style) Segment {
	s.Style = style
	return s
}

// Render implements Renderable. A Segment expands to nothing; the
// Console recognizes segments and emits them directly.
func (s Segment) Render(RenderOptions) []Renderable { return nil }

// SplitCells splits a segment at the given cell offset, never breaking
// a multi-cell character: an offset inside one rounds down to the
// character's start. Control-code segments are indivisible and stay
// whole on the left.
func (s Segment) SplitCells(cut int) (Segment, Segment) {
	if s.Control == ControlCode {
		return s, Segment{Style: s.Style, Control: ControlCode}
	}
	left, right := splitTextCells(s.Text, cut)
	return Segment{Text: left, Style: s.Style}, Segment{Text: right, Style: s.Style}
}

// Divide splits a segment sequence at the given ascending cell offsets,
// returning len(cuts)+1 groups. Offsets falling inside a multi-cell
// character round down to the character boundary, so no group ever
// holds half a glyph.
func Divide(segments []Segment, cuts []int) [][]Segment {
	groups := make([][]Segment, 0, len(cuts)+1)
	var current []Segment
	pos := 0
	cutIdx := 0

	flushThrough := func(target int) {
		// Close groups whose cut offsets are at or before target.
		for cutIdx < len(cuts) && cuts[cutIdx] <= target {
			groups = append(groups, current)
			current = nil
			cutIdx++
		}
	}

	flushThrough(pos)
	for _, seg := range segments {
		w := seg.CellLength()
		for cutIdx < len(cuts) && pos+w > cuts[cutIdx] {
			// The cut lands inside this segment.
			left, right := seg.SplitCells(cuts[cutIdx] - pos)
			if left.Text != "" || left.Control == ControlCode {
				current = append(current, left)
			}
			pos += left.CellLength()
			groups = append(groups, current)
			current = nil
			cutIdx++
			seg = right
			w = seg.CellLength()
		}
		if seg.Text != "" || seg.Control == ControlCode {
			current = append(current, seg)
		}
		pos += w
		flushThrough(pos)
	}
	for len(groups) < len(cuts)+1 {
		groups = append(groups, current)
		current = nil
	}
	return groups
}

// SplitLines splits a segment sequence into logical lines at
// ControlLineBreak segments and at newlines embedded in text runs. The
// break markers themselves are not part of any line.
func SplitLines(segments []Segment) [][]Segment {
	var lines [][]Segment
	var current []Segment

	flush := func() {
		lines = append(lines, current)
		current = nil
	}

	for _, seg := range segments {
		if seg.Control == ControlLineBreak {
			flush()
			continue
		}
		if seg.Control == ControlCode {
			current = append(current, seg)
			continue
		}
		rest := seg.Text
		for {
			idx := strings.IndexByte(rest, '\n')
			if idx < 0 {
				break
			}
			if idx > 0 {
				current = append(current, Segment{Text: rest[:idx], Style: seg.Style})
			}
			flush()
			rest = rest[idx+1:]
		}
		if rest != "" {
			current = append(current, Segment{Text: rest, Style: seg.Style})
		}
	}
	if len(current) > 0 || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// lineCellLength sums the cell widths of a line's segments.
func lineCellLength(line []Segment) int {
	total := 0
	for _, seg := range line {
		total += seg.CellLength()
	}
	return total
}

// truncateLine cuts a line down to at most width cells. With ellipsis,
// the final cell becomes a single "…".
func truncateLine(line []Segment, width int, ellipsis bool) []Segment {
	if lineCellLength(line) <= width {
		return line
	}
	if ellipsis && width > 0 {
		groups := Divide(line, []int{width - 1})
		out := append([]Segment{}, groups[0]...)
		var style *Style
		if n := len(out); n > 0 {
			style = out[n-1].Style
		}
		return append(out, Segment{Text: "…", Style: style})
	}
	groups := Divide(line, []int{width})
	return groups[0]
}

// padLine appends spaces until the line occupies exactly width cells.
// Used by justification and column stitching; the padding is unstyled
// so backgrounds do not bleed.
func padLine(line []Segment, width int) []Segment {
	gap := width - lineCellLength(line)
	if gap <= 0 {
		return line
	}
	return append(line, Segment{Text: strings.Repeat(" ", gap)})
}
