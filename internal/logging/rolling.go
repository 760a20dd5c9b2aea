package logging

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// currentLinkName is the symlink maintained next to the day files. It
// always targets the bare filename of the most recently opened file so
// the directory can be relocated without breaking the link.
const currentLinkName = "current"

// Clock returns the current local time. Injectable for tests via
// WithClock.
type Clock func() time.Time

// RollingFileWriter is an io.Writer that appends to a daily logfile named
// {prefix}-{YYYY-MM-DD}.log and transparently rotates it at local
// midnight. Rotation happens lazily on the write path; a day with no
// writes produces no file. Safe for concurrent use.
type RollingFileWriter struct {
	dir      string
	prefix   string
	linkPath string
	clock    Clock
	onRotate func(filename string)

	// file, buf and rollAt form one unit of state: the rollover check
	// and the write must be atomic as a pair, so a single mutex guards
	// all three.
	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	rollAt time.Time
}

// RollingOption configures a RollingFileWriter.
type RollingOption func(*RollingFileWriter)

// WithClock sets the time source used for rollover decisions.
// Default is time.Now.
func WithClock(clock Clock) RollingOption {
	return func(w *RollingFileWriter) {
		w.clock = clock
	}
}

// WithRotateHook sets a callback invoked with the new file's bare name
// after each successful rotation, while the writer lock is held.
func WithRotateHook(hook func(filename string)) RollingOption {
	return func(w *RollingFileWriter) {
		w.onRotate = hook
	}
}

// NewRollingFileWriter creates a writer for daily logfiles in dir. The
// prefix has path separators replaced with "-" so the derived filenames
// stay single-segment. The directory must already exist; the writer
// never creates it. No file is opened until the first Write.
func NewRollingFileWriter(dir, prefix string, opts ...RollingOption) *RollingFileWriter {
	prefix = strings.ReplaceAll(prefix, string(os.PathSeparator), "-")
	w := &RollingFileWriter{
		dir:      dir,
		prefix:   prefix,
		linkPath: filepath.Join(dir, currentLinkName),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.rollAt = nextMidnight(w.clock())
	return w
}

// Write appends p to the current day's file, rotating first if the time
// source has crossed the rollover instant. The buffer is flushed before
// returning, so the bytes are visible to external readers without a
// close. Any open, write or flush error is returned to the caller; a
// failed rotation leaves the writer fileless and the next call retries.
func (w *RollingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock()
	if w.file == nil || !now.Before(w.rollAt) {
		if err := w.rollover(now); err != nil {
			return 0, err
		}
	}

	n, err := w.buf.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.buf.Flush()
}

// Close flushes and releases the current file handle, if any. The writer
// stays usable; a later Write reopens the current day's file.
func (w *RollingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.release()
}

// rollover opens the file for the day containing now and repoints the
// "current" symlink at it. Called with w.mu held. The old handle is
// released before the open so a failure leaves no stale file behind.
func (w *RollingFileWriter) rollover(now time.Time) error {
	if err := w.release(); err != nil {
		return err
	}

	name := fmt.Sprintf("%s-%s.log", w.prefix, now.Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open logfile %s: %w", name, err)
	}
	w.file = f
	w.buf = bufio.NewWriter(f)

	// The symlink is a convenience; rotation must not fail because of it.
	_ = os.Remove(w.linkPath)
	_ = os.Symlink(name, w.linkPath)

	// Recompute from now rather than stepping the old instant forward:
	// a process idle across several days rolls over exactly once, to
	// the current day.
	w.rollAt = nextMidnight(now)

	if w.onRotate != nil {
		w.onRotate(name)
	}
	return nil
}

// release flushes and closes the open file, leaving the writer fileless.
// Called with w.mu held.
func (w *RollingFileWriter) release() error {
	if w.file == nil {
		return nil
	}
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	w.file = nil
	w.buf = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// nextMidnight returns the first local midnight strictly after t.
func nextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
