// Package glint is a styled-text terminal rendering core. It converts
// renderables (anything that can expand into styled text segments)
// into flat, width-shaped segment sequences, and can keep a renderable
// painted on a terminal with a live auto-refreshing display.
//
// The pieces: [Style] is an immutable, combinable description of
// terminal styling, parsed from compact definitions like "bold red on
// blue" and memoized in a bounded cache. [Segment] is the atomic output
// unit. [Console] drives the [Renderable] protocol iteratively, with
// depth-capped expansion, ancestor style composition, and
// wrapping/overflow policies. [Live] repaints a renderable to a [Sink]
// on a timer, serialized with manual refreshes.
package glint

import "strings"

// Renderable is the capability implemented by anything drawable. Render
// yields the next level of the expansion: segments and/or nested
// renderables, in emission order. The Console walks the result
// depth-first, so deeply nested structures never recurse on the call
// stack.
type Renderable interface {
	Render(opts RenderOptions) []Renderable
}

// ConsoleRenderable is an optional richer form of the render capability
// for renderables that need to expand or measure their children
// themselves (layouts distributing width, for example). The Console
// prefers it over Render when implemented.
type ConsoleRenderable interface {
	Renderable
	RenderConsole(c *Console, opts RenderOptions) ([]Renderable, error)
}

// Styled wraps a renderable so that style is overlaid onto the ancestor
// style for the whole subtree beneath it.
type Styled struct {
	Content Renderable
	Style   *Style
}

// NewStyled wraps content with an ancestor style.
func NewStyled(content Renderable, style *Style) Styled {
	return Styled{Content: content, Style: style}
}

// Render implements Renderable. The Console recognizes Styled directly
// and pushes Style onto the ancestor stack; this fallback only matters
// for callers walking the protocol by hand.
func (s Styled) Render(RenderOptions) []Renderable {
	return []Renderable{s.Content}
}

// DefaultMaxDepth caps renderable expansion. Anything legitimately
// nested deeper than this is vanishingly unlikely; hitting the cap
// almost always means a cycle.
const DefaultMaxDepth = 128

// Console turns a renderable plus options into a flat ordered segment
// sequence. It is stateless apart from configuration and safe for
// concurrent use; all of its work is synchronous, CPU-bound expansion.
type Console struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// NewConsole returns a Console with default limits.
func NewConsole() *Console {
	return &Console{}
}

func (c *Console) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}

// renderFrame is one unit of pending expansion work: a renderable, the
// options it renders under, and the composed ancestor style.
type renderFrame struct {
	node  Renderable
	opts  RenderOptions
	style *Style
	depth int
}

// Render expands r into segments under opts: depth-first and
// order-preserving, with styles composed down the ancestor stack and
// the line shaping of opts (wrapping, overflow, justification) applied
// to the result. Expansion uses an explicit work stack, so depth is
// limited by MaxDepth rather than the call stack; exceeding it fails
// with a *RenderLoopError.
func (c *Console) Render(r Renderable, opts RenderOptions) ([]Segment, error) {
	opts = opts.normalized()

	stack := make([]renderFrame, 0, 16)
	stack = append(stack, renderFrame{node: r, opts: opts, style: NullStyle})

	var out []Segment
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > c.maxDepth() {
			return nil, &RenderLoopError{Depth: c.maxDepth()}
		}

		switch n := f.node.(type) {
		case Segment:
			style := f.style.Combine(n.Style)
			if style.IsNull() {
				style = nil
			}
			out = append(out, Segment{Text: n.Text, Style: style, Control: n.Control})

		case Styled:
			stack = append(stack, renderFrame{
				node:  n.Content,
				opts:  f.opts,
				style: f.style.Combine(n.Style),
				depth: f.depth + 1,
			})

		case *Styled:
			stack = append(stack, renderFrame{
				node:  n.Content,
				opts:  f.opts,
				style: f.style.Combine(n.Style),
				depth: f.depth + 1,
			})

		default:
			var children []Renderable
			if cr, ok := f.node.(ConsoleRenderable); ok {
				var err error
				children, err = cr.RenderConsole(c, f.opts)
				if err != nil {
					return nil, err
				}
			} else {
				children = f.node.Render(f.opts)
			}
			// Push in reverse so the first-yielded child pops first.
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, renderFrame{
					node:  children[i],
					opts:  f.opts,
					style: f.style,
					depth: f.depth + 1,
				})
			}
		}
	}

	return c.shapeLines(out, opts), nil
}

// RenderLines renders r and splits the result into logical lines,
// cropped to opts.MaxHeight when set.
func (c *Console) RenderLines(r Renderable, opts RenderOptions) ([][]Segment, error) {
	opts = opts.normalized()
	segments, err := c.Render(r, opts)
	if err != nil {
		return nil, err
	}
	lines := SplitLines(segments)
	if opts.MaxHeight > 0 && len(lines) > opts.MaxHeight {
		lines = lines[:opts.MaxHeight]
	}
	return lines, nil
}

// shapeLines applies the per-line overflow policy and justification,
// then reassembles the segment stream with line breaks between lines.
func (c *Console) shapeLines(segments []Segment, opts RenderOptions) []Segment {
	width := opts.MaxWidth
	lines := SplitLines(segments)

	var shaped [][]Segment
	for _, line := range lines {
		length := lineCellLength(line)
		switch {
		case length <= width, opts.Overflow == OverflowIgnore:
			shaped = append(shaped, line)
		case opts.Overflow == OverflowFold && !opts.NoWrap:
			shaped = append(shaped, foldLine(line, width)...)
		case opts.Overflow == OverflowCrop, opts.Overflow == OverflowFold && opts.NoWrap:
			shaped = append(shaped, truncateLine(line, width, false))
		default: // OverflowEllipsis
			shaped = append(shaped, truncateLine(line, width, true))
		}
	}

	out := make([]Segment, 0, len(segments))
	for i, line := range shaped {
		if i > 0 {
			out = append(out, LineBreak)
		}
		out = append(out, justifyLine(line, width, opts.Justify)...)
	}
	return out
}

// foldLine breaks a line into chunks of at most width cells. Splits
// round down at character boundaries, so chunk widths drift below width
// rather than above it. A single character wider than the width gets a
// chunk of its own, which is the one case a chunk may exceed width.
func foldLine(line []Segment, width int) [][]Segment {
	var out [][]Segment
	rest := line
	for lineCellLength(rest) > width {
		groups := Divide(rest, []int{width})
		head, tail := groups[0], groups[1]
		if lineCellLength(head) == 0 {
			head, tail = takeOversizedCell(rest)
		}
		out = append(out, head)
		rest = tail
	}
	return append(out, rest)
}

// takeOversizedCell splits off the line's first character (plus any
// leading zero-width segments), guaranteeing fold progress when that
// character alone exceeds the fold width.
func takeOversizedCell(line []Segment) ([]Segment, []Segment) {
	var head []Segment
	for i, seg := range line {
		if seg.Control == ControlCode || seg.Text == "" {
			head = append(head, seg)
			continue
		}
		first, remainder := firstGrapheme(seg.Text)
		head = append(head, Segment{Text: first, Style: seg.Style})
		var tail []Segment
		if remainder != "" {
			tail = append(tail, Segment{Text: remainder, Style: seg.Style})
		}
		return head, append(tail, line[i+1:]...)
	}
	return head, nil
}

// justifyLine pads a line within width according to the justification.
// Lines at or beyond width are left untouched.
func justifyLine(line []Segment, width int, j Justify) []Segment {
	if j == JustifyDefault {
		return line
	}
	gap := width - lineCellLength(line)
	if gap <= 0 {
		return line
	}
	switch j {
	case JustifyRight:
		return append([]Segment{{Text: strings.Repeat(" ", gap)}}, line...)
	case JustifyCenter:
		left := gap / 2
		out := make([]Segment, 0, len(line)+2)
		if left > 0 {
			out = append(out, Segment{Text: strings.Repeat(" ", left)})
		}
		out = append(out, line...)
		return append(out, Segment{Text: strings.Repeat(" ", gap-left)})
	default: // JustifyLeft
		return padLine(line, width)
	}
}
