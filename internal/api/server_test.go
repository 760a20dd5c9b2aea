package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smazurov/logsink/internal/events"
	"github.com/smazurov/logsink/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	if err := logging.Initialize(logging.Config{Level: "info", Console: false}); err != nil {
		t.Fatalf("logging.Initialize failed: %v", err)
	}
	return NewServer(&Options{EventBus: events.New()})
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestLogsHistoryEndpoint(t *testing.T) {
	s := newTestServer(t)

	logging.GetLogger("api-test").Info("hello history")

	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/logs", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp struct {
		Entries []logging.LogEntry `json:"entries"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	found := false
	for _, e := range resp.Entries {
		if e.Message == "hello history" && e.Namespace == "api-test" {
			found = true
		}
	}
	if !found {
		t.Errorf("logged entry missing from history: %s", rr.Body.String())
	}
}

func TestLevelsRoundTrip(t *testing.T) {
	s := newTestServer(t)

	// Force the logger into existence so it shows up in the report.
	logging.GetLogger("backend::scheduler")

	body := strings.NewReader(`{"namespace":"backend::scheduler","level":"debug"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/logging/levels", body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/logging/levels", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rr.Code)
	}

	var resp struct {
		Global     string            `json:"global"`
		Namespaces map[string]string `json:"namespaces"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.Namespaces["backend::scheduler"] != "debug" {
		t.Errorf("namespace level = %q, want debug (body: %s)", resp.Namespaces["backend::scheduler"], rr.Body.String())
	}

	// Bogus level is rejected.
	req = httptest.NewRequest(http.MethodPut, "/api/logging/levels", strings.NewReader(`{"level":"loud"}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("PUT bogus level status = %d, want 422", rr.Code)
	}
}
