package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/logsink/internal/logging"
)

// registerLevelRoutes registers runtime level inspection and control.
func (s *Server) registerLevelRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-levels",
		Method:      http.MethodGet,
		Path:        "/api/logging/levels",
		Summary:     "Levels",
		Description: "Active global level, per-namespace overrides and filter rules.",
		Tags:        []string{"logging"},
	}, func(ctx context.Context, _ *struct{}) (*LevelsResponse, error) {
		global, namespaces := logging.Levels()
		return &LevelsResponse{
			Body: LevelsData{
				Global:     global,
				Namespaces: namespaces,
				Filter:     logging.FilterRules(),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-level",
		Method:      http.MethodPut,
		Path:        "/api/logging/levels",
		Summary:     "Set Level",
		Description: "Change the level of one namespace (or the global level) at runtime.",
		Tags:        []string{"logging"},
	}, func(ctx context.Context, input *SetLevelInput) (*LevelsResponse, error) {
		if err := logging.SetLevel(input.Body.Namespace, input.Body.Level); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid level", err)
		}
		s.logger.Info("Log level changed",
			"namespace", input.Body.Namespace, "level", input.Body.Level)

		global, namespaces := logging.Levels()
		return &LevelsResponse{
			Body: LevelsData{
				Global:     global,
				Namespaces: namespaces,
				Filter:     logging.FilterRules(),
			},
		}, nil
	})
}
