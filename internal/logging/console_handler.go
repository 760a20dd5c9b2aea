package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ANSI sequences used by the console appender. Warnings render magenta,
// errors bold red and debug output faint, matching the traditional
// console coloring of this log layout.
const (
	ansiReset   = "\x1b[0m"
	ansiBoldRed = "\x1b[1;31m"
	ansiMagenta = "\x1b[35m"
	ansiFaint   = "\x1b[2m"
)

// ConsoleHandler is a slog.Handler that writes colored, human-oriented
// lines to a terminal:
//
//	[10:23:45] myapp: [worker] message key=value
//
// Colors are applied per level and only when the destination is a
// terminal. The optional prefix (usually the application name) helps
// when several processes share one console.
type ConsoleHandler struct {
	w      io.Writer
	level  slog.Leveler
	prefix string
	color  bool
	attrs  []slog.Attr
	groups []string

	mu *sync.Mutex
}

// NewConsoleHandler creates a console handler writing to w. Color
// output is enabled when w is os.Stdout or os.Stderr connected to a
// terminal.
func NewConsoleHandler(w io.Writer, level slog.Leveler, prefix string) *ConsoleHandler {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &ConsoleHandler{w: w, level: level, prefix: prefix, color: color, mu: &sync.Mutex{}}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var body strings.Builder
	body.WriteString(h.prefix)
	body.WriteString(Tag(ctx))
	switch {
	case r.Level >= slog.LevelError:
		body.WriteString("ERROR: ")
	case r.Level >= slog.LevelWarn:
		body.WriteString("WARNING: ")
	}
	body.WriteString(r.Message)

	appendAttrText(&body, h.groups, h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttrText(&body, h.groups, []slog.Attr{a})
		return true
	})

	var line strings.Builder
	timeStr := r.Time.Format("[15:04:05]")
	if h.color {
		line.WriteString(ansiFaint)
		line.WriteString(timeStr)
		line.WriteString(ansiReset)
		line.WriteByte(' ')
		line.WriteString(colorFor(r.Level))
		line.WriteString(body.String())
		if colorFor(r.Level) != "" {
			line.WriteString(ansiReset)
		}
	} else {
		line.WriteString(timeStr)
		line.WriteByte(' ')
		line.WriteString(body.String())
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := io.WriteString(h.w, line.String()); err != nil {
		return err
	}
	recordsWritten.WithLabelValues(levelToString(r.Level), "console").Inc()
	return nil
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	clone := *h
	clone.groups = newGroups
	return &clone
}

// colorFor returns the ANSI sequence for a level, or "" for plain info.
func colorFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiBoldRed
	case level >= slog.LevelWarn:
		return ansiMagenta
	case level >= slog.LevelInfo:
		return ""
	default:
		return ansiFaint
	}
}
