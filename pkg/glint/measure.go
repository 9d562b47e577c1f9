package glint

// Measurement is a renderable's width contract: the narrowest it can be
// drawn without breaking content, and the widest it would use if given
// unlimited space. Invariant: Minimum <= Maximum.
type Measurement struct {
	Minimum int
	Maximum int
}

// NewMeasurement returns a normalized measurement.
func NewMeasurement(minimum, maximum int) Measurement {
	return Measurement{Minimum: minimum, Maximum: maximum}.Normalize()
}

// Normalize clips negatives to zero and forces Minimum <= Maximum.
func (m Measurement) Normalize() Measurement {
	if m.Minimum < 0 {
		m.Minimum = 0
	}
	if m.Maximum < 0 {
		m.Maximum = 0
	}
	if m.Minimum > m.Maximum {
		m.Minimum = m.Maximum
	}
	return m
}

// Clamp bounds both ends to maxWidth.
func (m Measurement) Clamp(maxWidth int) Measurement {
	if m.Maximum > maxWidth {
		m.Maximum = maxWidth
	}
	if m.Minimum > maxWidth {
		m.Minimum = maxWidth
	}
	return m.Normalize()
}

// Measurer is the optional measurement capability of a renderable.
// Renderables that do not implement it are measured by the fallback in
// Console.Measure.
type Measurer interface {
	Measure(opts RenderOptions) Measurement
}

// unboundedWidth stands in for "infinite" width in the measurement
// fallback. Wide enough that nothing realistic folds.
const unboundedWidth = 1 << 16

// Measure reports how narrow and how wide r can be drawn. Renderables
// implementing Measurer are asked directly; anything else is measured
// the expensive way, by rendering at width 1 and at an effectively
// unbounded width and taking the widest observed line of each.
func (c *Console) Measure(r Renderable, opts RenderOptions) (Measurement, error) {
	opts = opts.normalized()
	if m, ok := r.(Measurer); ok {
		return m.Measure(opts).Normalize().Clamp(opts.MaxWidth), nil
	}

	narrow, err := c.RenderLines(r, opts.WithMaxWidth(1).WithOverflow(OverflowFold).WithNoWrap(false))
	if err != nil {
		return Measurement{}, err
	}
	wide, err := c.RenderLines(r, opts.WithMaxWidth(unboundedWidth).WithOverflow(OverflowIgnore).WithNoWrap(true))
	if err != nil {
		return Measurement{}, err
	}

	widest := func(lines [][]Segment) int {
		w := 0
		for _, line := range lines {
			if l := lineCellLength(line); l > w {
				w = l
			}
		}
		return w
	}
	return NewMeasurement(widest(narrow), widest(wide)).Clamp(opts.MaxWidth), nil
}
