package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// CreateTailCmd creates the tail command, which follows the "current"
// symlink in a log directory and keeps following across daily
// rotations.
func CreateTailCmd() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "tail [log-dir]",
		Short: "Print the current day's logfile",
		Long: `Resolves the "current" symlink in the given log directory and prints the ` +
			`file it points at. With --follow, keeps printing appended records and ` +
			`switches files when midnight rotation repoints the symlink.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			link := filepath.Join(args[0], "current")
			if !follow {
				data, err := os.ReadFile(link)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", link, err)
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			return followCurrent(link)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep following appended records")

	return cmd
}

// followCurrent prints the linked file and then polls for appended data,
// reopening whenever the symlink target changes.
func followCurrent(link string) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	target, err := os.Readlink(link)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", link, err)
	}
	f, err := os.Open(link)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := io.Copy(os.Stdout, f); err != nil {
			return err
		}

		select {
		case <-stop:
			return nil
		case <-ticker.C:
		}

		// Rotation repoints the symlink; switch to the new file after
		// draining the old one.
		newTarget, err := os.Readlink(link)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err == nil && newTarget != target {
			if _, err := io.Copy(os.Stdout, f); err != nil {
				return err
			}
			_ = f.Close()
			f, err = os.Open(link)
			if err != nil {
				return err
			}
			target = newTarget
		}
	}
}
