package glint

import "strings"

// Group renders its items vertically, each starting on its own line.
type Group struct {
	items []Renderable
}

// NewGroup returns a vertical group of renderables.
func NewGroup(items ...Renderable) *Group {
	return &Group{items: items}
}

// Add appends an item to the group.
func (g *Group) Add(item Renderable) {
	g.items = append(g.items, item)
}

// Render implements Renderable.
func (g *Group) Render(RenderOptions) []Renderable {
	out := make([]Renderable, 0, len(g.items)*2)
	for _, item := range g.items {
		if len(out) > 0 {
			out = append(out, LineBreak)
		}
		out = append(out, item)
	}
	return out
}

// Columns lays its items out side by side, distributing the available
// width proportionally to each item's measured maximum and never below
// its measured minimum. Rounding leftovers go to the earliest columns.
type Columns struct {
	// Padding is the blank gap between adjacent columns.
	Padding int

	items []Renderable
}

// NewColumns returns a column layout with a one-cell gap.
func NewColumns(items ...Renderable) *Columns {
	return &Columns{Padding: 1, items: items}
}

// Add appends a column.
func (c *Columns) Add(item Renderable) {
	c.items = append(c.items, item)
}

// Render implements Renderable via a default console. Errors from child
// expansion surface through ConsoleRenderable when rendered by a
// Console, which is the normal path.
func (c *Columns) Render(opts RenderOptions) []Renderable {
	out, _ := c.RenderConsole(NewConsole(), opts)
	return out
}

// RenderConsole implements ConsoleRenderable: measure every column,
// distribute the width, render each column into its slot, and stitch
// the rows back together.
func (c *Columns) RenderConsole(console *Console, opts RenderOptions) ([]Renderable, error) {
	if len(c.items) == 0 {
		return nil, nil
	}
	opts = opts.normalized()

	gaps := c.Padding * (len(c.items) - 1)
	avail := opts.MaxWidth - gaps
	if avail < len(c.items) {
		avail = len(c.items)
	}

	maxima := make([]int, len(c.items))
	minima := make([]int, len(c.items))
	for i, item := range c.items {
		m, err := console.Measure(item, opts.WithMaxWidth(avail))
		if err != nil {
			return nil, err
		}
		maxima[i] = m.Maximum
		minima[i] = m.Minimum
	}

	widths := RatioDistribute(avail, maxima, minima)
	for i := range widths {
		// Give no column more than it can use.
		if widths[i] > maxima[i] {
			widths[i] = maxima[i]
		}
		if widths[i] < 1 {
			widths[i] = 1
		}
	}

	columns := make([][][]Segment, len(c.items))
	rows := 0
	for i, item := range c.items {
		lines, err := console.RenderLines(item, opts.WithMaxWidth(widths[i]).WithOverflow(OverflowFold))
		if err != nil {
			return nil, err
		}
		columns[i] = lines
		if len(lines) > rows {
			rows = len(lines)
		}
	}

	var gap Segment
	if c.Padding > 0 {
		gap = Segment{Text: strings.Repeat(" ", c.Padding)}
	}
	var out []Renderable
	for row := 0; row < rows; row++ {
		if row > 0 {
			out = append(out, LineBreak)
		}
		for i, lines := range columns {
			if i > 0 && c.Padding > 0 {
				out = append(out, gap)
			}
			var line []Segment
			if row < len(lines) {
				line = lines[row]
			}
			last := i == len(columns)-1
			if !last {
				line = padLine(line, widths[i])
			}
			for _, seg := range line {
				out = append(out, seg)
			}
		}
	}
	return out, nil
}
