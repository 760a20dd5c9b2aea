package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	defaultBufferSize = 1000
	defaultAppName    = "logsink"

	// rootNamespace is attributed to records logged through the default
	// logger rather than a namespaced one.
	rootNamespace = "app"
)

var (
	namespaceLoggers   = make(map[string]*slog.Logger)
	namespaceLevelVars = make(map[string]*slog.LevelVar)
	namespaceChains    = make(map[string]*atomic.Pointer[slog.Handler])
	globalConfig       Config
	globalLevelVar     = &slog.LevelVar{} // default level
	filterVar          atomic.Pointer[TargetFilter]
	isInitialized      bool
	mutex              sync.RWMutex
	logBuffer          *RingBuffer
	fileWriter         *RollingFileWriter

	// Callbacks are stored atomically: the rotate hook runs while the
	// file writer's lock is held, so it must not touch the registry
	// mutex.
	logCallback    atomic.Pointer[LogCallback]
	rotateCallback atomic.Pointer[func(filename string)]
)

// Config represents logging configuration.
type Config struct {
	Level      string            `toml:"level"`
	Format     string            `toml:"format"`
	Dir        string            `toml:"dir"`
	AppName    string            `toml:"app_name"`
	ShowApp    bool              `toml:"show_app"`
	Console    bool              `toml:"console"`
	Journal    bool              `toml:"journal"`
	Filter     string            `toml:"filter"`
	Namespaces map[string]string `toml:"namespaces"`
}

// Initialize sets up the logging system: the rolling file appender in
// Config.Dir (created recursively if needed), the console and journal
// appenders, the target filter and the ring buffer. It is re-entrant:
// calling it again applies a new configuration to already-handed-out
// loggers, which is how config hot reload works.
func Initialize(config Config) error {
	mutex.Lock()
	defer mutex.Unlock()

	if config.AppName == "" {
		config.AppName = defaultAppName
	}

	// The file writer never creates its directory; that contract is
	// honored here, once, before construction.
	if config.Dir != "" {
		if err := os.MkdirAll(config.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}
	if config.Dir != "" {
		fileWriter = NewRollingFileWriter(config.Dir, config.AppName, WithRotateHook(func(filename string) {
			fileRotations.Inc()
			if cb := rotateCallback.Load(); cb != nil {
				(*cb)(filename)
			}
		}))
	}

	filterVar.Store(ParseTargetFilter(config.Filter))

	globalConfig = config
	isInitialized = true

	if logBuffer == nil {
		logBuffer = NewRingBuffer(defaultBufferSize)
	}

	globalLevel := parseLevel(config.Level)
	if globalLevel == nil {
		defaultLevel := slog.LevelInfo
		globalLevel = &defaultLevel
	}
	globalLevelVar.Set(*globalLevel)

	// Update all existing namespace loggers in place: retarget levels
	// and swap the appender chain, so appender changes (dir, journal,
	// filter) reach loggers handed out earlier without invalidating
	// their pointers.
	for namespace, levelVar := range namespaceLevelVars {
		namespaceLevel := *globalLevel
		if levelStr, exists := config.Namespaces[namespace]; exists {
			if parsed := parseLevel(levelStr); parsed != nil {
				namespaceLevel = *parsed
			}
		}
		levelVar.Set(namespaceLevel)

		chain := createHandler(config, levelVar)
		namespaceChains[namespace].Store(&chain)
	}

	slog.SetDefault(slog.New(createHandler(config, globalLevelVar)))
	return nil
}

// Shutdown flushes and closes the file appender. Loggers stay usable;
// a later write reopens the file.
func Shutdown() error {
	mutex.Lock()
	defer mutex.Unlock()
	if fileWriter == nil {
		return nil
	}
	return fileWriter.Close()
}

// GetBuffer returns the log ring buffer for reading historical logs.
func GetBuffer() *RingBuffer {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer
}

// SetLogCallback sets a callback to be called for each new log entry.
// Used for publishing log events to SSE clients.
func SetLogCallback(callback LogCallback) {
	logCallback.Store(&callback)
}

// SetRotateCallback sets a callback invoked with the new filename after
// each logfile rotation.
func SetRotateCallback(callback func(filename string)) {
	rotateCallback.Store(&callback)
}

// GetLogger returns a logger for the specified namespace, creating it
// if needed. Namespaces are hierarchical, e.g. "frontend::session";
// the target filter walks that hierarchy when deciding whether records
// pass.
func GetLogger(namespace string) *slog.Logger {
	mutex.RLock()
	if logger, exists := namespaceLoggers[namespace]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	// Double-check in case another goroutine created it
	if logger, exists := namespaceLoggers[namespace]; exists {
		return logger
	}

	// A LevelVar per namespace so the level can be changed at runtime
	levelVar := &slog.LevelVar{}
	levelVar.Set(namespaceLevel(namespace))

	cfg := globalConfig
	if !isInitialized {
		cfg = Config{Format: "text", Console: true}
	}

	chainPtr := &atomic.Pointer[slog.Handler]{}
	chain := createHandler(cfg, levelVar)
	chainPtr.Store(&chain)

	logger := slog.New(newSwapHandler(chainPtr)).With(namespaceKey, namespace)
	namespaceLoggers[namespace] = logger
	namespaceLevelVars[namespace] = levelVar
	namespaceChains[namespace] = chainPtr
	return logger
}

// namespaceLevel resolves the configured level for a namespace, walking
// up the hierarchy so "frontend::session" inherits from "frontend"
// before falling back to the global level. Called with mutex held.
func namespaceLevel(namespace string) slog.Level {
	if !isInitialized {
		return slog.LevelInfo
	}

	ns := namespace
	for {
		if levelStr, exists := globalConfig.Namespaces[ns]; exists {
			if parsed := parseLevel(levelStr); parsed != nil {
				return *parsed
			}
		}
		i := strings.LastIndex(ns, NamespaceSeparator)
		if i < 0 {
			break
		}
		ns = ns[:i]
	}

	if parsed := parseLevel(globalConfig.Level); parsed != nil {
		return *parsed
	}
	return slog.LevelInfo
}

// SetLevel changes the level of one namespace at runtime. An empty
// namespace changes the global default.
func SetLevel(namespace, level string) error {
	parsed := parseLevel(level)
	if parsed == nil {
		return fmt.Errorf("unknown log level %q", level)
	}

	mutex.Lock()
	defer mutex.Unlock()

	if namespace == "" {
		globalLevelVar.Set(*parsed)
		globalConfig.Level = level
		return nil
	}

	if globalConfig.Namespaces == nil {
		globalConfig.Namespaces = make(map[string]string)
	}
	globalConfig.Namespaces[namespace] = level
	if levelVar, exists := namespaceLevelVars[namespace]; exists {
		levelVar.Set(*parsed)
	}
	return nil
}

// Levels reports the global level and every namespace override.
func Levels() (global string, namespaces map[string]string) {
	mutex.RLock()
	defer mutex.RUnlock()

	namespaces = make(map[string]string, len(namespaceLevelVars))
	for ns, levelVar := range namespaceLevelVars {
		namespaces[ns] = levelToString(levelVar.Level())
	}
	return levelToString(globalLevelVar.Level()), namespaces
}

// ApplyFilter replaces the target filter with one parsed from the given
// rule text. Records in flight keep the filter they already loaded.
func ApplyFilter(text string) {
	mutex.Lock()
	globalConfig.Filter = text
	mutex.Unlock()
	filterVar.Store(ParseTargetFilter(text))
}

// FilterRules returns the active filter's rule text in canonical form.
func FilterRules() string {
	if f := filterVar.Load(); f != nil {
		return f.Rules()
	}
	return ""
}

// createHandler builds the appender chain for one logger: console, file,
// journal and ring buffer behind the dispatcher, all behind the target
// filter. Level can be slog.Level or *slog.LevelVar for dynamic changes.
func createHandler(config Config, level slog.Leveler) slog.Handler {
	var handlers []slog.Handler

	if config.Console && isStdoutAvailable() {
		if config.Format == "json" {
			handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		} else {
			prefix := ""
			if config.ShowApp {
				prefix = "[" + config.AppName + "] "
			}
			handlers = append(handlers, NewConsoleHandler(os.Stdout, level, prefix))
		}
	}

	if fileWriter != nil {
		handlers = append(handlers, NewFileHandler(fileWriter, level))
	}

	if config.Journal && IsJournalAvailable() {
		handlers = append(handlers, NewJournalHandler(level, config.AppName))
	}

	// The buffer handler is always present; the debug API reads it.
	handlers = append(handlers, NewBufferHandler(logBuffer, level, func(entry LogEntry) {
		if cb := logCallback.Load(); cb != nil {
			(*cb)(entry)
		}
	}))

	var inner slog.Handler
	if len(handlers) == 1 {
		inner = handlers[0]
	} else {
		inner = NewMultiHandler(handlers...)
	}
	return NewFilterHandler(&filterVar, inner)
}

// isStdoutAvailable checks if stdout is connected to a terminal, pipe, socket, or file.
func isStdoutAvailable() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	mode := fi.Mode()
	// Available if terminal, pipe, socket, or regular file (not /dev/null which is ModeDevice)
	return (mode&os.ModeCharDevice) != 0 || (mode&os.ModeNamedPipe) != 0 || (mode&os.ModeSocket) != 0 || mode.IsRegular()
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) *slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		l := slog.LevelDebug
		return &l
	case "info":
		l := slog.LevelInfo
		return &l
	case "warn", "warning":
		l := slog.LevelWarn
		return &l
	case "error":
		l := slog.LevelError
		return &l
	default:
		return nil
	}
}
