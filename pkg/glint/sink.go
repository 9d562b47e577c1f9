package glint

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// Sink is where rendered output goes. It abstracts the terminal so the
// Live scheduler can be tested against a fake, and so callers can
// redirect frames anywhere that understands the encoded bytes. Escape
// sequence encoding is the sink side's concern; the rendering core only
// produces segments.
type Sink interface {
	// WriteString sends encoded bytes to the output.
	WriteString(s string)

	// Columns returns the current output width in cells.
	Columns() int

	// Rows returns the current output height in lines.
	Rows() int

	// HideCursor hides the hardware cursor.
	HideCursor()

	// ShowCursor shows the hardware cursor.
	ShowCursor()
}

// EncodeLine serializes one line of segments to ANSI bytes: each text
// run wrapped in its style's escape sequences, control codes passed
// through verbatim. No trailing reset is added; writers append one per
// line so styling never bleeds.
func EncodeLine(line []Segment) string {
	var b strings.Builder
	for _, seg := range line {
		if seg.Control == ControlCode {
			b.WriteString(seg.Text)
			continue
		}
		if seg.Style.IsNull() {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(seg.Style.Render(seg.Text))
	}
	return b.String()
}

// ProcessTerminal is a Sink backed by os.Stdout. Terminal dimensions
// are cached and refreshed on SIGWINCH to avoid repeated ioctl syscalls
// during rendering.
type ProcessTerminal struct {
	sigCh      chan os.Signal
	stopCtx    context.Context
	stopCancel context.CancelFunc

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

// NewProcessTerminal returns a stdout sink and begins tracking window
// size changes. Call Close when done to release the signal handler.
func NewProcessTerminal() *ProcessTerminal {
	t := &ProcessTerminal{}
	t.stopCtx, t.stopCancel = context.WithCancel(context.Background())
	t.refreshSize()

	t.sigCh = make(chan os.Signal, 1)
	signal.Notify(t.sigCh, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-t.sigCh:
				t.refreshSize()
			case <-t.stopCtx.Done():
				return
			}
		}
	}()
	return t
}

// Close stops listening for window size changes.
func (t *ProcessTerminal) Close() {
	if t.stopCancel != nil {
		t.stopCancel()
	}
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
	}
}

func (t *ProcessTerminal) WriteString(s string) {
	_, _ = os.Stdout.WriteString(s)
}

func (t *ProcessTerminal) Columns() int {
	t.sizeMu.RLock()
	c := t.cols
	t.sizeMu.RUnlock()
	if c == 0 {
		return 80
	}
	return c
}

func (t *ProcessTerminal) Rows() int {
	t.sizeMu.RLock()
	r := t.rows
	t.sizeMu.RUnlock()
	if r == 0 {
		return 24
	}
	return r
}

func (t *ProcessTerminal) HideCursor() {
	t.WriteString("\x1b[?25l")
}

func (t *ProcessTerminal) ShowCursor() {
	t.WriteString("\x1b[?25h")
}

// refreshSize queries the kernel for current terminal dimensions and
// caches them. Called once at construction and on every SIGWINCH.
func (t *ProcessTerminal) refreshSize() {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return
	}
	t.sizeMu.Lock()
	if ws.Col > 0 {
		t.cols = int(ws.Col)
	}
	if ws.Row > 0 {
		t.rows = int(ws.Row)
	}
	t.sizeMu.Unlock()
}
