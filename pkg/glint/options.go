package glint

// Justify controls horizontal alignment of rendered lines.
type Justify uint8

const (
	JustifyDefault Justify = iota
	JustifyLeft
	JustifyCenter
	JustifyRight
)

// Overflow selects what happens to a logical line wider than MaxWidth.
type Overflow uint8

const (
	// OverflowFold breaks the line at the width boundary and continues
	// on the next line.
	OverflowFold Overflow = iota
	// OverflowCrop discards everything past the boundary.
	OverflowCrop
	// OverflowEllipsis crops and replaces the final cell with "…".
	OverflowEllipsis
	// OverflowIgnore emits the overflow unmodified.
	OverflowIgnore
)

// RenderOptions carries the layout constraints for one render pass.
// Options are plain values: renderables derive modified copies for
// their children via the With* methods and never mutate the caller's
// instance.
type RenderOptions struct {
	// MaxWidth is the available width in cells. Console.Render
	// substitutes a default when it is zero or negative.
	MaxWidth int
	// MaxHeight limits the number of lines RenderLines returns.
	// Zero means unbounded.
	MaxHeight int
	Justify   Justify
	Overflow  Overflow
	// NoWrap suppresses folding regardless of Overflow.
	NoWrap bool
}

// DefaultRenderWidth is used when options carry no usable width.
const DefaultRenderWidth = 80

// NewRenderOptions returns options for the given width with fold
// overflow.
func NewRenderOptions(maxWidth int) RenderOptions {
	return RenderOptions{MaxWidth: maxWidth}
}

// WithMaxWidth returns a copy constrained to maxWidth cells.
func (o RenderOptions) WithMaxWidth(maxWidth int) RenderOptions {
	o.MaxWidth = maxWidth
	return o
}

// WithMaxHeight returns a copy constrained to maxHeight lines.
func (o RenderOptions) WithMaxHeight(maxHeight int) RenderOptions {
	o.MaxHeight = maxHeight
	return o
}

// WithJustify returns a copy with the given justification.
func (o RenderOptions) WithJustify(j Justify) RenderOptions {
	o.Justify = j
	return o
}

// WithOverflow returns a copy with the given overflow policy.
func (o RenderOptions) WithOverflow(ov Overflow) RenderOptions {
	o.Overflow = ov
	return o
}

// WithNoWrap returns a copy with wrapping suppressed or restored.
func (o RenderOptions) WithNoWrap(noWrap bool) RenderOptions {
	o.NoWrap = noWrap
	return o
}

func (o RenderOptions) normalized() RenderOptions {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultRenderWidth
	}
	return o
}
