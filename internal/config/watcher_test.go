package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smazurov/logsink/internal/logging"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatcher_BasicReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	received := make(chan logging.Config, 1)
	watcher := NewWatcher(path, newTestLogger(), WithDebounce(50*time.Millisecond))
	watcher.OnReload(func(cfg logging.Config) {
		received <- cfg
	})

	if startErr := watcher.Start(); startErr != nil {
		t.Fatal(startErr)
	}
	defer func() {
		if stopErr := watcher.Stop(); stopErr != nil {
			t.Errorf("watcher.Stop failed: %v", stopErr)
		}
	}()

	// Wait for watcher to initialize
	time.Sleep(100 * time.Millisecond)

	content := "[logging]\nlevel = \"debug\"\nfilter = \"-vendor\"\n"
	if writeErr := os.WriteFile(path, []byte(content), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	select {
	case cfg := <-received:
		if cfg.Level != "debug" {
			t.Errorf("reloaded Level = %q, want debug", cfg.Level)
		}
		if cfg.Filter != "-vendor" {
			t.Errorf("reloaded Filter = %q, want -vendor", cfg.Filter)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload notification received")
	}
}

func TestWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	received := make(chan logging.Config, 1)
	watcher := NewWatcher(path, newTestLogger(), WithDebounce(50*time.Millisecond))
	unsub := watcher.OnReload(func(cfg logging.Config) {
		received <- cfg
	})
	unsub()

	if startErr := watcher.Start(); startErr != nil {
		t.Fatal(startErr)
	}
	defer watcher.Stop()

	time.Sleep(100 * time.Millisecond)
	if writeErr := os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	select {
	case <-received:
		t.Error("handler called after unsubscribe")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StartMissingFile(t *testing.T) {
	watcher := NewWatcher(filepath.Join(t.TempDir(), "missing.toml"), newTestLogger())
	if err := watcher.Start(); err == nil {
		watcher.Stop()
		t.Fatal("Start should fail for a missing file")
	}
}
