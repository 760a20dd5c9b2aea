package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// FileHandler is a slog.Handler that renders records in the classic
// logfile layout
//
//	10:23:45,123 : INFO  : [worker] message key=value
//
// and writes each rendered line through the given writer, typically a
// RollingFileWriter. Write errors surface to the logging call site.
type FileHandler struct {
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewFileHandler creates a file handler writing to w at the given level.
func NewFileHandler(w io.Writer, level slog.Leveler) *FileHandler {
	return &FileHandler{w: w, level: level}
}

// Enabled implements slog.Handler.
func (h *FileHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *FileHandler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("15:04:05,000"))
	sb.WriteString(" : ")
	sb.WriteString(padLevel(r.Level))
	sb.WriteString(" : ")
	sb.WriteString(Tag(ctx))
	sb.WriteString(r.Message)

	appendAttrText(&sb, h.groups, h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttrText(&sb, h.groups, []slog.Attr{a})
		return true
	})
	sb.WriteByte('\n')

	_, err := io.WriteString(h.w, sb.String())
	if err != nil {
		fileWriteErrors.Inc()
		return err
	}
	recordsWritten.WithLabelValues(levelToString(r.Level), "file").Inc()
	return nil
}

// WithAttrs implements slog.Handler.
func (h *FileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &FileHandler{w: h.w, level: h.level, attrs: newAttrs, groups: h.groups}
}

// WithGroup implements slog.Handler.
func (h *FileHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &FileHandler{w: h.w, level: h.level, attrs: h.attrs, groups: newGroups}
}

// padLevel renders a level name padded to the width of the longest one
// so the message column lines up.
func padLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

// appendAttrText appends attrs in " key=value" form, flattening groups
// with dotted keys. The namespace attribute carries logger identity,
// not payload, and is omitted.
func appendAttrText(sb *strings.Builder, groups []string, attrs []slog.Attr) {
	for _, a := range attrs {
		if a.Equal(slog.Attr{}) {
			continue
		}
		key := a.Key
		if len(groups) > 0 {
			key = strings.Join(groups, ".") + "." + key
		}
		if a.Value.Kind() == slog.KindGroup {
			for _, ga := range a.Value.Group() {
				appendAttrText(sb, append(groups, a.Key), []slog.Attr{ga})
			}
			continue
		}
		if key == namespaceKey {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(fmt.Sprint(a.Value.Any()))
	}
}
