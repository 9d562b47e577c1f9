package glint

import (
	"errors"
	"fmt"
)

// StyleSyntaxError reports an unrecognized or contradictory token in a
// style definition string.
type StyleSyntaxError struct {
	Definition string
	Token      string
	Reason     string
}

func (e *StyleSyntaxError) Error() string {
	return fmt.Sprintf("bad style %q: %s (token %q)", e.Definition, e.Reason, e.Token)
}

// RenderLoopError reports that renderable expansion exceeded the depth
// cap, which almost always means a renderable yields itself (directly
// or through a cycle).
type RenderLoopError struct {
	Depth int
}

func (e *RenderLoopError) Error() string {
	return fmt.Sprintf("renderable expansion exceeded depth %d; likely a self-referential renderable", e.Depth)
}

// Live state-machine misuse.
var (
	ErrAlreadyRunning = errors.New("live display is already running")
	ErrNotRunning     = errors.New("live display is not running")
)
