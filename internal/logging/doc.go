// Package logging is a process-local logging sink layer: it decides
// where formatted records go (console, daily rolling files, systemd
// journal) and which records pass, based on their origin namespace.
//
// # Overview
//
// The package builds on Go's slog with automatic output routing:
//   - Daily rolling logfiles named {app}-{YYYY-MM-DD}.log with a stable
//     "current" symlink, rotated lazily at local midnight
//   - ANSI colored console output when stdout is a terminal
//   - systemd journal when available (Linux systems with journald)
//   - An in-memory ring buffer feeding the debug API and SSE stream
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",              // Global log level
//		Format:  "text",              // Console format: text or json
//		Dir:     "/var/log/myapp",    // Logfile directory (created if absent)
//		AppName: "myapp",             // Logfile prefix and journal identifier
//		Filter:  "-vendor::chatty",   // Target filter rules
//		Console: true,
//		Journal: true,
//		Namespaces: map[string]string{
//			"frontend::session": "debug", // Per-namespace overrides
//		},
//	})
//
// Get a logger for your namespace:
//
//	logger := logging.GetLogger("frontend::session")
//	logger.Info("Session opened", "user", name)
//
// Namespaces are hierarchical with "::" separators. Level overrides and
// filter rules apply to a namespace and everything below it.
//
// # Target filter
//
// The filter rule text is a comma-separated list. "-ns" blacklists a
// namespace subtree, "ns" or "+ns" whitelists one. A record's namespace
// is walked from most to least specific; the nearest matching rule
// decides. With a non-empty whitelist, namespaces matching no rule at
// all are rejected.
//
// # Rolling files
//
// The file appender opens its file lazily on the first write and
// rotates when a write crosses local midnight, so idle days produce no
// files. Restarting a process resumes the same day's file. Every write
// is flushed, so `tail -f current` always sees complete records.
//
// # Task tags
//
// Workers can tag their records (the classic per-thread log prefix):
//
//	ctx := logging.WithTag(context.Background(), "[worker-3] ")
//	logger.InfoContext(ctx, "cycle finished")
//
// # Viewing Logs
//
// On a system with journald:
//
//	journalctl -t myapp                         # All myapp logs
//	journalctl -t myapp -f                      # Follow live
//	journalctl -t myapp NAMESPACE=frontend::session
//
// # Configuration
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	dir = "/var/log/myapp"
//	filter = "-vendor::chatty,frontend"
//
//	[logging.namespaces]
//	"frontend::session" = "debug"
package logging
