package api

import "github.com/smazurov/logsink/internal/logging"

// HealthData is the health endpoint payload.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Health status"`
	Message string `json:"message" example:"API is healthy" doc:"Status detail"`
}

// HealthResponse wraps HealthData for huma.
type HealthResponse struct {
	Body HealthData
}

// LogHistoryResponse carries the ring buffer contents.
type LogHistoryResponse struct {
	Body struct {
		Entries []logging.LogEntry `json:"entries" doc:"Retained log entries, oldest first"`
	}
}

// LevelsData reports the sink's active levels and filter rules.
type LevelsData struct {
	Global     string            `json:"global" example:"info" doc:"Global log level"`
	Namespaces map[string]string `json:"namespaces" doc:"Per-namespace level overrides"`
	Filter     string            `json:"filter,omitempty" example:"-vendor::chatty" doc:"Active target filter rules"`
}

// LevelsResponse wraps LevelsData for huma.
type LevelsResponse struct {
	Body LevelsData
}

// SetLevelInput changes one namespace's level at runtime.
type SetLevelInput struct {
	Body struct {
		Namespace string `json:"namespace,omitempty" example:"frontend::session" doc:"Namespace to change; empty for the global level"`
		Level     string `json:"level" example:"debug" doc:"New level: debug, info, warn or error"`
	}
}
