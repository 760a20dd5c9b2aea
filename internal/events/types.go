package events

// Event type constants for kelindar/event.
const (
	TypeLogEntry uint32 = iota + 1
	TypeRotation
	TypeConfigReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// LogEntryEvent represents an accepted log record, published for SSE
// streaming.
type LogEntryEvent struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number for deduplication"`
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Namespace  string         `json:"namespace" example:"frontend::session" doc:"Origin namespace"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }

// RotationEvent is published after the file appender rolls over to a
// new day file.
type RotationEvent struct {
	Filename  string `json:"filename" example:"myapp-2025-01-09.log" doc:"Bare name of the newly opened logfile"`
	Timestamp string `json:"timestamp" example:"2025-01-09T00:00:00Z" doc:"Rotation timestamp"`
}

// Type returns the event type identifier for RotationEvent.
func (e RotationEvent) Type() uint32 { return TypeRotation }

// ConfigReloadedEvent is published after a config file change has been
// applied to the running sink.
type ConfigReloadedEvent struct {
	Path      string `json:"path" example:"config.toml" doc:"Path of the reloaded config file"`
	Timestamp string `json:"timestamp" example:"2025-01-09T10:30:00Z" doc:"Reload timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }
