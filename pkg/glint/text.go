package glint

import "strings"

// Text is the basic renderable leaf: a styled text run, word-wrapped to
// the available width. Newlines in the content are respected.
type Text struct {
	content string
	style   *Style
}

// NewText returns a Text drawn in style. style may be nil.
func NewText(content string, style *Style) *Text {
	return &Text{content: content, style: style}
}

// Plain returns an unstyled Text.
func Plain(content string) *Text {
	return NewText(content, nil)
}

// Render implements Renderable, yielding one segment per wrapped line.
func (t *Text) Render(opts RenderOptions) []Renderable {
	var out []Renderable
	for _, line := range t.wrapped(opts) {
		if len(out) > 0 {
			out = append(out, LineBreak)
		}
		out = append(out, Segment{Text: line, Style: t.style})
	}
	return out
}

// Measure implements Measurer: the minimum is the widest word (the
// narrowest the text can wrap to), the maximum the widest source line.
func (t *Text) Measure(RenderOptions) Measurement {
	minimum, maximum := 0, 0
	for _, line := range strings.Split(t.content, "\n") {
		if w := CellLength(line); w > maximum {
			maximum = w
		}
		for _, word := range strings.Fields(line) {
			if w := CellLength(word); w > minimum {
				minimum = w
			}
		}
	}
	return NewMeasurement(minimum, maximum)
}

// wrapped returns the content split into display lines, word-wrapped
// unless wrapping is suppressed.
func (t *Text) wrapped(opts RenderOptions) []string {
	source := strings.Split(t.content, "\n")
	if opts.NoWrap || opts.MaxWidth <= 0 {
		return source
	}
	var lines []string
	for _, line := range source {
		lines = append(lines, wrapWords(line, opts.MaxWidth)...)
	}
	return lines
}

// wrapWords greedily wraps a single line at word boundaries. Words
// wider than the width are hard-split at cell boundaries.
func wrapWords(line string, width int) []string {
	if CellLength(line) <= width {
		return []string{line}
	}
	var lines []string
	var current strings.Builder
	currentW := 0

	flush := func() {
		lines = append(lines, current.String())
		current.Reset()
		currentW = 0
	}

	for _, word := range strings.Fields(line) {
		wordW := CellLength(word)
		sep := 0
		if currentW > 0 {
			sep = 1
		}
		if currentW+sep+wordW <= width {
			if sep == 1 {
				current.WriteString(" ")
			}
			current.WriteString(word)
			currentW += sep + wordW
			continue
		}
		if currentW > 0 {
			flush()
		}
		// Hard-split oversized words. A single character wider than
		// the width goes on a line of its own so the split always
		// makes progress.
		for CellLength(word) > width {
			head, tail := splitTextCells(word, width)
			if head == "" {
				head, tail = firstGrapheme(word)
			}
			lines = append(lines, head)
			word = tail
		}
		current.WriteString(word)
		currentW = CellLength(word)
	}
	if currentW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
