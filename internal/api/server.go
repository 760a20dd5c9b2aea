package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/smazurov/logsink/internal/events"
	"github.com/smazurov/logsink/internal/logging"
)

// Server is the debug/ops HTTP surface of the sink: log history, live
// log streaming, runtime level control and Prometheus metrics.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	eventBus   *events.Bus
	logger     *slog.Logger
}

// Options configures the API server.
type Options struct {
	EventBus *events.Bus
}

// NewServer creates the debug API server with Huma v2 using Go 1.22+
// native routing.
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("Logsink API", "1.0.0")
	config.Info.Description = "Debug and control API for the logging sink"
	// Empty servers list will make OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}

	api := humago.New(mux, config)

	server := &Server{
		api:      api,
		mux:      mux,
		eventBus: opts.EventBus,
		logger:   logging.GetLogger("api"),
	}

	mux.Handle("GET /metrics", logging.MetricsHandler())

	server.registerRoutes()

	return server
}

// registerRoutes sets up all API endpoints.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
	}, func(ctx context.Context, input *struct{}) (*HealthResponse, error) {
		return &HealthResponse{
			Body: HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	s.registerLogRoutes()
	s.registerLevelRoutes()
}

// Start starts the HTTP server on the specified address.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting logsink debug API", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	return s.httpServer.ListenAndServe()
}

// Stop shuts down the server without waiting for open SSE connections.
func (s *Server) Stop() error {
	s.logger.Info("Stopping debug API")

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}
