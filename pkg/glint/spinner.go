package glint

import "time"

// Spinner is an animated activity indicator. It carries no goroutine of
// its own: the frame is derived from elapsed time, so it animates
// whenever something repaints it, which a Live display does on every
// tick.
type Spinner struct {
	// Label is displayed after the spinner frame.
	Label string
	// Style wraps the spinner frame (not the label). May be nil.
	Style *Style

	frames   []string
	interval time.Duration
	start    time.Time
	now      func() time.Time
}

// NewSpinner returns a dot-style spinner.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		Label:    label,
		frames:   []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
		interval: 80 * time.Millisecond,
		start:    time.Now(),
		now:      time.Now,
	}
}

// frame returns the animation frame for the current moment.
func (s *Spinner) frame() string {
	elapsed := s.now().Sub(s.start)
	if s.interval <= 0 || len(s.frames) == 0 {
		return ""
	}
	return s.frames[int(elapsed/s.interval)%len(s.frames)]
}

// Render implements Renderable.
func (s *Spinner) Render(RenderOptions) []Renderable {
	out := []Renderable{NewSegment(s.frame(), s.Style)}
	if s.Label != "" {
		out = append(out, NewSegment(" "+s.Label, nil))
	}
	return out
}

// Measure implements Measurer. The spinner never wraps.
func (s *Spinner) Measure(RenderOptions) Measurement {
	width := CellLength(s.frame())
	if s.Label != "" {
		width += 1 + CellLength(s.Label)
	}
	return NewMeasurement(width, width)
}
