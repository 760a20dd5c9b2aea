package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/logsink/cmd"
	"github.com/smazurov/logsink/internal/api"
	"github.com/smazurov/logsink/internal/config"
	"github.com/smazurov/logsink/internal/events"
	"github.com/smazurov/logsink/internal/logging"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Debug API port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Console logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingDir     string `help:"Logfile directory; empty disables the file appender" default:"" toml:"logging.dir" env:"LOGGING_DIR"`
	LoggingApp     string `help:"Application name used as logfile prefix and journal identifier" default:"logsink" toml:"logging.app_name" env:"LOGGING_APP"`
	LoggingFilter  string `help:"Target filter rules, e.g. '-vendor::chatty,frontend'" default:"" toml:"logging.filter" env:"LOGGING_FILTER"`
	LoggingConsole bool   `help:"Log to stdout" default:"true" toml:"logging.console" env:"LOGGING_CONSOLE"`
	LoggingJournal bool   `help:"Log to systemd journal when available" default:"true" toml:"logging.journal" env:"LOGGING_JOURNAL"`
}

func main() {
	// Create Huma CLI
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Per-namespace level overrides only live in the config file;
		// flags and env cover the flat settings.
		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		loggingConfig.Dir = opts.LoggingDir
		loggingConfig.AppName = opts.LoggingApp
		loggingConfig.Console = opts.LoggingConsole
		loggingConfig.Journal = opts.LoggingJournal
		if opts.LoggingFilter != "" {
			loggingConfig.Filter = opts.LoggingFilter
		}
		if err := logging.Initialize(loggingConfig); err != nil {
			slog.Error("Failed to initialize logging", "error", err)
			os.Exit(1)
		}

		logger := logging.GetLogger("main")

		// Create event bus for in-process event handling
		eventBus := events.New()

		// Publish accepted records and rotations for SSE consumers.
		logging.SetLogCallback(func(entry logging.LogEntry) {
			eventBus.Publish(events.LogEntryEvent{
				Seq:        entry.Seq,
				Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
				Level:      entry.Level,
				Namespace:  entry.Namespace,
				Message:    entry.Message,
				Attributes: entry.Attributes,
			})
		})
		logging.SetRotateCallback(func(filename string) {
			eventBus.Publish(events.RotationEvent{
				Filename:  filename,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		})

		server := api.NewServer(&api.Options{EventBus: eventBus})

		// Hot-reload levels and filter rules when the config file changes.
		var watcher *config.Watcher
		if _, statErr := os.Stat(opts.Config); statErr == nil {
			watcher = config.NewWatcher(opts.Config, logger)
			watcher.OnReload(func(cfg logging.Config) {
				if err := logging.Initialize(cfg); err != nil {
					logger.Warn("Failed to apply reloaded config", "error", err)
					return
				}
				eventBus.Publish(events.ConfigReloadedEvent{
					Path:      opts.Config,
					Timestamp: time.Now().Format(time.RFC3339),
				})
				logger.Info("Logging configuration reloaded", "config", opts.Config)
			})
		}

		hooks.OnStart(func() {
			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Failed to start config watcher", "error", startErr)
				}
			}

			logger.Info("Starting debug API server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping config watcher", "error", stopErr)
				}
			}
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if flushErr := logging.Shutdown(); flushErr != nil {
				logger.Error("Error flushing logfile", "error", flushErr)
			}
		})
	})

	// Add emit command
	emitCmd := cmd.CreateEmitCmd()
	cli.Root().AddCommand(emitCmd)

	// Add tail command
	tailCmd := cmd.CreateTailCmd()
	cli.Root().AddCommand(tailCmd)

	// Run the CLI
	cli.Run()
}
