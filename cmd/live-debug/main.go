// Command live-debug tails the JSONL frame stats emitted by a Live
// display and prints rolling aggregates.
//
// Usage:
//
//	# Terminal 1: run something that writes frame stats
//	glint stress --stats /tmp/glint_live_stats.log
//
//	# Terminal 2: watch the numbers
//	go run ./cmd/live-debug
//	go run ./cmd/live-debug -file /path/to/custom.log
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

func main() {
	logFile := flag.String("file", "/tmp/glint_live_stats.log", "path to JSONL frame stats log")
	window := flag.Duration("window", 5*time.Second, "aggregation window")
	flag.Parse()

	if err := run(*logFile, *window); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type frameRecord struct {
	Ts             int64 `json:"ts"`
	TotalUs        int64 `json:"total_us"`
	RenderUs       int64 `json:"render_us"`
	DiffUs         int64 `json:"diff_us"`
	WriteUs        int64 `json:"write_us"`
	TotalLines     int   `json:"total_lines"`
	LinesRepainted int   `json:"lines_repainted"`
	FullRedraw     bool  `json:"full_redraw"`
}

func run(logFile string, window time.Duration) error {
	records := make(chan frameRecord, 256)
	go tailFile(logFile, records)

	fmt.Printf("tailing %s (window %s)\n", logFile, window)

	var frames []frameRecord
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case rec := <-records:
			frames = append(frames, rec)
		case <-ticker.C:
			cutoff := time.Now().Add(-window).UnixMilli()
			for len(frames) > 0 && frames[0].Ts < cutoff {
				frames = frames[1:]
			}
			printSummary(frames, window)
		}
	}
}

// printSummary reports the frame rate and latency distribution over the
// retained window.
func printSummary(frames []frameRecord, window time.Duration) {
	if len(frames) == 0 {
		fmt.Println("  no frames")
		return
	}

	totals := make([]int64, 0, len(frames))
	var renderSum, diffSum, writeSum int64
	repainted, lines, fulls := 0, 0, 0
	for _, f := range frames {
		totals = append(totals, f.TotalUs)
		renderSum += f.RenderUs
		diffSum += f.DiffUs
		writeSum += f.WriteUs
		repainted += f.LinesRepainted
		lines += f.TotalLines
		if f.FullRedraw {
			fulls++
		}
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i] < totals[j] })
	n := int64(len(frames))

	fps := float64(len(frames)) / window.Seconds()
	fmt.Printf("  %.1f fps  total p50=%dµs p99=%dµs  render=%dµs diff=%dµs write=%dµs  repaint %d/%d lines  full=%d\n",
		fps,
		percentile(totals, 50),
		percentile(totals, 99),
		renderSum/n,
		diffSum/n,
		writeSum/n,
		repainted, lines, fulls)
}

func percentile(sorted []int64, p int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted) - 1) * p / 100
	return sorted[idx]
}

// tailFile follows path, re-opening on truncation, and sends each valid
// JSONL record downstream.
func tailFile(path string, out chan<- frameRecord) {
	for {
		f, err := os.Open(path)
		if err != nil {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		f.Seek(0, io.SeekEnd) //nolint:errcheck
		scanner := bufio.NewScanner(f)
		for {
			for scanner.Scan() {
				var rec frameRecord
				if err := json.Unmarshal(scanner.Bytes(), &rec); err == nil {
					out <- rec
				}
			}
			time.Sleep(50 * time.Millisecond)

			info, err := f.Stat()
			if err != nil {
				break
			}
			pos, _ := f.Seek(0, io.SeekCurrent)
			if info.Size() < pos {
				// Truncated underneath us; start over.
				break
			}
			scanner = bufio.NewScanner(f)
		}
		f.Close()
	}
}
