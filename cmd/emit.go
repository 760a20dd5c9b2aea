package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/smazurov/logsink/internal/config"
	"github.com/smazurov/logsink/internal/logging"
	"github.com/spf13/cobra"
)

// CreateEmitCmd creates the emit command, a smoke tool that pushes
// sample records through the configured appender chain. Useful for
// checking filter rules and watching rotation behavior.
func CreateEmitCmd() *cobra.Command {
	var configFile string
	var dir string
	var filter string
	var count int
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Emit sample log records",
		Long: `Emits sample records across several namespaces and levels through the ` +
			`configured sinks. Loads the [logging] table from the config file; --dir and ` +
			`--filter override it.`,
		Run: func(_ *cobra.Command, _ []string) {
			loggingConfig := config.LoadLoggingConfig(configFile)
			if dir != "" {
				loggingConfig.Dir = dir
			}
			if filter != "" {
				loggingConfig.Filter = filter
			}
			if err := logging.Initialize(loggingConfig); err != nil {
				fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
				os.Exit(1)
			}

			namespaces := []string{
				"frontend",
				"frontend::session",
				"backend::scheduler",
				"vendor::chatty",
			}

			ctx := logging.WithTag(context.Background(), "[emit] ")
			for i := 0; i < count; i++ {
				ns := namespaces[i%len(namespaces)]
				logger := logging.GetLogger(ns)
				switch i % 4 {
				case 0:
					logger.DebugContext(ctx, "sample debug record", "seq", i)
				case 1:
					logger.InfoContext(ctx, "sample info record", "seq", i)
				case 2:
					logger.WarnContext(ctx, "sample warning record", "seq", i)
				default:
					logger.ErrorContext(ctx, "sample error record", "seq", i)
				}
				if interval > 0 {
					time.Sleep(interval)
				}
			}

			if err := logging.Shutdown(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.toml", "Path to configuration file")
	cmd.Flags().StringVar(&dir, "dir", "", "Logfile directory (overrides config)")
	cmd.Flags().StringVar(&filter, "filter", "", "Target filter rules (overrides config)")
	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of records to emit")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Delay between records")

	return cmd
}
