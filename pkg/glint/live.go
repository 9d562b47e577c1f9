package glint

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultRefreshPerSecond is the Live repaint rate when none is given.
const DefaultRefreshPerSecond = 4.0

// Live keeps a renderable painted on a sink, repainting it from a
// background goroutine at a fixed rate. Manual refreshes and renderable
// swaps are serialized with the timer through one mutex, so frames
// never interleave and every written frame corresponds to exactly one
// complete renderable snapshot.
type Live struct {
	console          *Console
	sink             Sink
	log              *slog.Logger
	debugWriter      io.Writer
	refreshPerSecond float64
	transient        bool
	baseOpts         RenderOptions

	mu         sync.Mutex
	renderable Renderable
	running    bool
	stopCh     chan struct{}
	doneCh     chan struct{}

	// Repaint state, guarded by mu.
	prevLines []string
	prevWidth int
	cursorRow int // hardware cursor row within the painted block
	frames    int
}

// LiveOption configures a Live display.
type LiveOption func(*Live)

// WithRefreshPerSecond sets the background repaint rate.
func WithRefreshPerSecond(n float64) LiveOption {
	return func(l *Live) {
		if n > 0 {
			l.refreshPerSecond = n
		}
	}
}

// WithTransient erases the display when the Live is stopped.
func WithTransient(transient bool) LiveOption {
	return func(l *Live) { l.transient = transient }
}

// WithConsole renders frames through c instead of a default Console.
func WithConsole(c *Console) LiveOption {
	return func(l *Live) { l.console = c }
}

// WithRenderOptions overrides the per-frame render options. Zero
// MaxWidth/MaxHeight are filled from the sink dimensions each frame.
func WithRenderOptions(opts RenderOptions) LiveOption {
	return func(l *Live) { l.baseOpts = opts }
}

// WithErrorLog routes background render failures to log instead of
// slog.Default.
func WithErrorLog(log *slog.Logger) LiveOption {
	return func(l *Live) {
		if log != nil {
			l.log = log
		}
	}
}

// WithDebugWriter emits one JSONL frame-stats record per paint to w.
func WithDebugWriter(w io.Writer) LiveOption {
	return func(l *Live) { l.debugWriter = w }
}

// NewLive wraps r for live display on sink.
func NewLive(r Renderable, sink Sink, opts ...LiveOption) *Live {
	l := &Live{
		console:          NewConsole(),
		sink:             sink,
		log:              slog.Default(),
		refreshPerSecond: DefaultRefreshPerSecond,
		renderable:       r,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start paints the first frame and spawns the background refresh
// goroutine. It fails with ErrAlreadyRunning if the display is not
// stopped. A render failure in the first frame is reported through the
// error log, not returned; the display still starts and retries on the
// next tick.
func (l *Live) Start() error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	l.running = true
	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})
	l.prevLines = nil
	l.prevWidth = 0
	l.cursorRow = 0
	l.sink.HideCursor()
	stop, done := l.stopCh, l.doneCh
	err := l.paintLocked()
	l.mu.Unlock()

	if err != nil {
		l.log.Error("live: initial paint failed", "error", err)
	}
	go l.run(stop, done)
	return nil
}

// Stop signals the background goroutine, waits until it has fully
// exited, and restores the cursor. With the transient option the
// display is erased. Stopping an already stopped display is a no-op:
// it returns nil and writes nothing.
func (l *Live) Stop() error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = false
	stop, done := l.stopCh, l.doneCh
	l.mu.Unlock()

	close(stop)
	<-done

	l.mu.Lock()
	if l.transient {
		l.eraseLocked()
	} else if len(l.prevLines) > 0 {
		// Leave the shell on a fresh line below the display.
		l.sink.WriteString("\r\n")
	}
	l.sink.ShowCursor()
	l.mu.Unlock()
	return nil
}

// IsRunning reports whether the background refresher is active.
func (l *Live) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Refresh repaints immediately from the caller's goroutine. It takes
// the same lock as the background tick, so the two never interleave
// output. Render failures propagate to the caller; nothing is written
// for a failed frame.
func (l *Live) Refresh() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paintLocked()
}

// Update swaps the displayed renderable. The swap is atomic under the
// display lock; the new content appears on the next tick or Refresh.
// Rapid updates between ticks coalesce into one repaint.
func (l *Live) Update(r Renderable) {
	l.mu.Lock()
	l.renderable = r
	l.mu.Unlock()
}

// FramesPainted returns the number of frames written so far.
func (l *Live) FramesPainted() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// run is the background loop: tick, repaint, until stopped. A failed
// frame is reported and skipped; the loop keeps ticking so one bad
// render cannot take down the display.
func (l *Live) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := time.Duration(float64(time.Second) / l.refreshPerSecond)
	if interval <= 0 {
		interval = time.Second / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.Refresh(); err != nil {
				l.log.Error("live: background refresh failed", "error", err)
			}
		}
	}
}

// FrameStats captures performance metrics for a single repaint.
type FrameStats struct {
	RenderTime     time.Duration
	DiffTime       time.Duration
	WriteTime      time.Duration
	TotalTime      time.Duration
	TotalLines     int
	LinesRepainted int
	FullRedraw     bool
}

// frameStatsJSON is the JSONL record written by the debug writer.
type frameStatsJSON struct {
	Ts             int64 `json:"ts"`
	TotalUs        int64 `json:"total_us"`
	RenderUs       int64 `json:"render_us"`
	DiffUs         int64 `json:"diff_us"`
	WriteUs        int64 `json:"write_us"`
	TotalLines     int   `json:"total_lines"`
	LinesRepainted int   `json:"lines_repainted"`
	FullRedraw     bool  `json:"full_redraw"`
}

// paintLocked renders the current renderable and writes the frame.
// Caller holds mu. On render failure nothing is written, so previously
// displayed output is never corrupted by a bad frame.
func (l *Live) paintLocked() error {
	totalStart := time.Now()

	width := l.sink.Columns()
	if width <= 0 {
		width = DefaultRenderWidth
	}
	opts := l.baseOpts
	if opts.MaxWidth == 0 {
		opts.MaxWidth = width
	}
	if opts.MaxHeight == 0 {
		if rows := l.sink.Rows(); rows > 0 {
			opts.MaxHeight = rows
		}
	}

	var stats FrameStats
	renderStart := time.Now()
	lines, err := l.console.RenderLines(l.renderable, opts)
	if err != nil {
		return err
	}
	encoded := make([]string, len(lines))
	for i, line := range lines {
		encoded[i] = EncodeLine(line) + styleSGRReset
	}
	stats.RenderTime = time.Since(renderStart)
	stats.TotalLines = len(encoded)

	l.writeFrame(encoded, opts.MaxWidth, &stats)
	l.frames++

	stats.TotalTime = time.Since(totalStart)
	l.emitStats(stats)
	return nil
}

// writeFrame writes a differential update of the painted block: full
// paint on the first frame or a width change, otherwise only the lines
// that differ from the previous frame. Caller holds mu. All writes are
// bracketed in synchronized output so partially painted frames are
// never visible.
func (l *Live) writeFrame(lines []string, width int, stats *FrameStats) {
	diffStart := time.Now()

	if len(l.prevLines) == 0 || l.prevWidth != width {
		var b strings.Builder
		b.WriteString("\x1b[?2026h")
		if len(l.prevLines) > 0 {
			// Width changed: repaint in place from the block top.
			if l.cursorRow > 0 {
				fmt.Fprintf(&b, "\x1b[%dA", l.cursorRow)
			}
			b.WriteString("\r\x1b[J")
		}
		for i, line := range lines {
			if i > 0 {
				b.WriteString("\r\n")
			}
			b.WriteString("\x1b[2K")
			b.WriteString(line)
		}
		b.WriteString("\x1b[?2026l")
		stats.DiffTime = time.Since(diffStart)
		stats.FullRedraw = true
		stats.LinesRepainted = len(lines)

		writeStart := time.Now()
		l.sink.WriteString(b.String())
		stats.WriteTime = time.Since(writeStart)

		l.cursorRow = max(0, len(lines)-1)
		l.prevLines = lines
		l.prevWidth = width
		return
	}

	// Diff against the previous frame.
	firstChanged, lastChanged := -1, -1
	maxLen := max(len(lines), len(l.prevLines))
	for i := 0; i < maxLen; i++ {
		var oldLine, newLine string
		if i < len(l.prevLines) {
			oldLine = l.prevLines[i]
		}
		if i < len(lines) {
			newLine = lines[i]
		}
		if oldLine != newLine {
			if firstChanged == -1 {
				firstChanged = i
			}
			lastChanged = i
		}
	}

	if firstChanged == -1 {
		stats.DiffTime = time.Since(diffStart)
		l.prevLines = lines
		return
	}

	var b strings.Builder
	b.WriteString("\x1b[?2026h")
	cur := l.cursorRow
	extra := len(l.prevLines) - len(lines)

	if firstChanged >= len(lines) {
		// Pure shrink: nothing to rewrite, just clear the dropped tail.
		target := max(0, len(lines)-1)
		moveRow(&b, &cur, target)
		for i := 0; i < extra; i++ {
			b.WriteString("\r\n\x1b[2K")
		}
		fmt.Fprintf(&b, "\x1b[%dA\r", extra)
	} else {
		renderEnd := min(lastChanged, len(lines)-1)
		moveRow(&b, &cur, firstChanged)
		b.WriteString("\r")
		for i := firstChanged; i <= renderEnd; i++ {
			if i > firstChanged {
				b.WriteString("\r\n")
			}
			b.WriteString("\x1b[2K")
			b.WriteString(lines[i])
		}
		cur = renderEnd
		stats.LinesRepainted = renderEnd - firstChanged + 1
		if extra > 0 {
			moveRow(&b, &cur, len(lines)-1)
			for i := 0; i < extra; i++ {
				b.WriteString("\r\n\x1b[2K")
			}
			fmt.Fprintf(&b, "\x1b[%dA\r", extra)
		}
	}
	b.WriteString("\x1b[?2026l")
	stats.DiffTime = time.Since(diffStart)

	writeStart := time.Now()
	l.sink.WriteString(b.String())
	stats.WriteTime = time.Since(writeStart)

	l.cursorRow = cur
	l.prevLines = lines
}

// moveRow appends the cursor movement from *cur to target and records
// the new row. Downward movement uses CR/LF so the block grows
// naturally at the bottom of the screen.
func moveRow(b *strings.Builder, cur *int, target int) {
	switch {
	case target < *cur:
		fmt.Fprintf(b, "\x1b[%dA", *cur-target)
	case target > *cur:
		b.WriteString(strings.Repeat("\r\n", target-*cur))
	}
	*cur = target
}

// eraseLocked clears the painted block. Caller holds mu.
func (l *Live) eraseLocked() {
	if len(l.prevLines) == 0 {
		return
	}
	var b strings.Builder
	if l.cursorRow > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", l.cursorRow)
	}
	b.WriteString("\r\x1b[J")
	l.sink.WriteString(b.String())
	l.prevLines = nil
	l.cursorRow = 0
}

func (l *Live) emitStats(stats FrameStats) {
	if l.debugWriter == nil {
		return
	}
	rec := frameStatsJSON{
		Ts:             time.Now().UnixMilli(),
		TotalUs:        stats.TotalTime.Microseconds(),
		RenderUs:       stats.RenderTime.Microseconds(),
		DiffUs:         stats.DiffTime.Microseconds(),
		WriteUs:        stats.WriteTime.Microseconds(),
		TotalLines:     stats.TotalLines,
		LinesRepainted: stats.LinesRepainted,
		FullRedraw:     stats.FullRedraw,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	data = append(data, '\n')
	l.debugWriter.Write(data) //nolint:errcheck
}
