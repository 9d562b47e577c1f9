// Command glint showcases the rendering core: a styled demo display, a
// live-repaint stress exerciser, and a palette dump.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/glintlab/glint/pkg/glint"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "glint",
		Short: "Styled-text terminal rendering demos",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(demoCmd(), stressCmd(), colorsCmd())

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion("v0.1.0"),
	); err != nil {
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var seconds int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a live-updating styled display",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(seconds)
		},
	}
	cmd.Flags().IntVar(&seconds, "seconds", 10, "How long to run")
	return cmd
}

func runDemo(seconds int) error {
	term := glint.NewProcessTerminal()
	defer term.Close()

	header := glint.NewText("glint live demo", glint.MustParseStyle("bold bright_white on blue"))
	body := glint.NewColumns(
		glint.NewText("Styles are immutable, combinable, and cached.", glint.MustParseStyle("cyan")),
		glint.NewText("Segments carry text, style, and control markers.", glint.MustParseStyle("green")),
		glint.NewText("The console expands renderables without recursion.", glint.MustParseStyle("magenta")),
	)
	spin := glint.NewSpinner("rendering")
	spin.Style = glint.MustParseStyle("cyan")
	display := glint.NewGroup(header, body, spin)

	live := glint.NewLive(display, term,
		glint.WithRefreshPerSecond(10),
		glint.WithTransient(false),
	)
	if err := live.Start(); err != nil {
		return err
	}
	defer live.Stop() //nolint:errcheck

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	deadline := time.After(time.Duration(seconds) * time.Second)
	tick := time.NewTicker(250 * time.Millisecond)
	defer tick.Stop()

	n := 0
	for {
		select {
		case <-sigCh:
			return nil
		case <-deadline:
			return nil
		case <-tick.C:
			n++
			style := glint.MustParseStyle("yellow")
			if n%2 == 0 {
				style = glint.MustParseStyle("bold bright_yellow")
			}
			next := glint.NewGroup(header, body, spin,
				glint.NewText(fmt.Sprintf("updates: %d", n), style))
			live.Update(next)
		}
	}
}

func stressCmd() *cobra.Command {
	var (
		lines   int
		seconds int
		debug   string
	)
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Exercise the live repaint path with churning styled lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(lines, seconds, debug)
		},
	}
	cmd.Flags().IntVar(&lines, "lines", 40, "Number of log lines to churn")
	cmd.Flags().IntVar(&seconds, "seconds", 15, "How long to run")
	cmd.Flags().StringVar(&debug, "stats", "/tmp/glint_live_stats.log", "JSONL frame stats path (empty to disable)")
	return cmd
}

func runStress(lineCount, seconds int, statsPath string) error {
	term := glint.NewProcessTerminal()
	defer term.Close()

	opts := []glint.LiveOption{
		glint.WithRefreshPerSecond(20),
		glint.WithTransient(true),
	}
	if statsPath != "" {
		f, err := os.OpenFile(statsPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("open stats log: %w", err)
		}
		defer f.Close() //nolint:errcheck
		opts = append(opts, glint.WithDebugWriter(f))
		fmt.Fprintf(os.Stderr, "Frame stats → %s (run glint-live-debug to tail)\n", statsPath)
	}

	live := glint.NewLive(stressFrame(lineCount, 0), term, opts...)
	if err := live.Start(); err != nil {
		return err
	}
	defer live.Stop() //nolint:errcheck

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	deadline := time.After(time.Duration(seconds) * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	gen := 0
	for {
		select {
		case <-sigCh:
			return nil
		case <-deadline:
			return nil
		case <-tick.C:
			gen++
			live.Update(stressFrame(lineCount, gen))
		}
	}
}

var stressLevels = []struct {
	name  string
	style string
}{
	{"INFO", "green"},
	{"DEBUG", "cyan"},
	{"WARN", "yellow"},
	{"ERROR", "bold red"},
	{"TRACE", "dim"},
}

// stressFrame builds a frame of pseudo-log lines. A couple of lines
// churn every generation so the differential writer always has work.
func stressFrame(n, gen int) glint.Renderable {
	group := glint.NewGroup(
		glint.NewText("glint stress", glint.MustParseStyle("bold reverse")),
	)
	for i := 0; i < n; i++ {
		lvl := stressLevels[i%len(stressLevels)]
		msg := fmt.Sprintf("%-5s line %02d", lvl.name, i)
		if i == gen%max(n, 1) || i == (gen*7)%max(n, 1) {
			msg += fmt.Sprintf("  tick=%d latency=%dµs", gen, rand.Intn(5000))
		}
		group.Add(glint.NewText(msg, glint.MustParseStyle(lvl.style)))
	}
	return group
}

func colorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "Print the standard palette through the console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColors()
		},
	}
}

func runColors() error {
	console := glint.NewConsole()
	group := glint.NewGroup()
	names := []string{
		"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
		"bright_black", "bright_red", "bright_green", "bright_yellow",
		"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
	}
	for _, name := range names {
		group.Add(glint.NewColumns(
			glint.NewText(name, glint.MustParseStyle(name)),
			glint.NewText("on "+name, glint.MustParseStyle("black on "+name)),
		))
	}

	lines, err := console.RenderLines(group, glint.NewRenderOptions(60))
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(glint.EncodeLine(line))
		b.WriteString("\x1b[0m\n")
	}
	_, err = os.Stdout.WriteString(b.String())
	return err
}
