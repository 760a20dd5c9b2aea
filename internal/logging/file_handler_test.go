package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func record(level slog.Level, msg string, args ...any) slog.Record {
	r := slog.NewRecord(time.Date(2025, 3, 10, 10, 23, 45, 123e6, time.Local), level, msg, 0)
	r.Add(args...)
	return r
}

func TestFileHandlerLayout(t *testing.T) {
	var buf bytes.Buffer
	h := NewFileHandler(&buf, slog.LevelDebug)

	tests := []struct {
		name string
		ctx  context.Context
		rec  slog.Record
		want string
	}{
		{
			name: "info with attr",
			ctx:  context.Background(),
			rec:  record(slog.LevelInfo, "session opened", "user", "jane"),
			want: "10:23:45,123 : INFO  : session opened user=jane\n",
		},
		{
			name: "error",
			ctx:  context.Background(),
			rec:  record(slog.LevelError, "boom"),
			want: "10:23:45,123 : ERROR : boom\n",
		},
		{
			name: "tagged",
			ctx:  WithTag(context.Background(), "[worker-1] "),
			rec:  record(slog.LevelDebug, "tick"),
			want: "10:23:45,123 : DEBUG : [worker-1] tick\n",
		},
		{
			name: "namespace attr omitted",
			ctx:  context.Background(),
			rec:  record(slog.LevelWarn, "odd", "namespace", "frontend", "count", 3),
			want: "10:23:45,123 : WARN  : odd count=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if err := h.Handle(tt.ctx, tt.rec); err != nil {
				t.Fatalf("Handle failed: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileHandlerWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewFileHandler(&buf, slog.LevelDebug).
		WithAttrs([]slog.Attr{slog.String("stream", "cam1")}).
		WithGroup("net")

	if err := h.Handle(context.Background(), record(slog.LevelInfo, "up", "port", 8080)); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "stream=cam1") {
		t.Errorf("bound attr missing from %q", got)
	}
	if !strings.Contains(got, "net.port=8080") {
		t.Errorf("grouped attr missing from %q", got)
	}
}

func TestConsoleHandlerPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	// A bytes.Buffer is not a terminal, so output stays uncolored.
	h := NewConsoleHandler(&buf, slog.LevelDebug, "[myapp] ")

	tests := []struct {
		name string
		rec  slog.Record
		want string
	}{
		{
			name: "info",
			rec:  record(slog.LevelInfo, "ready"),
			want: "[10:23:45] [myapp] ready\n",
		},
		{
			name: "warn keyword",
			rec:  record(slog.LevelWarn, "slow disk"),
			want: "[10:23:45] [myapp] WARNING: slow disk\n",
		},
		{
			name: "error keyword",
			rec:  record(slog.LevelError, "no disk"),
			want: "[10:23:45] [myapp] ERROR: no disk\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if err := h.Handle(context.Background(), tt.rec); err != nil {
				t.Fatalf("Handle failed: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
			if strings.Contains(buf.String(), "\x1b[") {
				t.Errorf("unexpected ANSI escape writing to a non-terminal: %q", buf.String())
			}
		})
	}
}
