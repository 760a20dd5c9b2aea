package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestConfig represents a test configuration structure.
type TestConfig struct {
	Config string `help:"Config file path"`

	// Basic types
	StringField string   `toml:"test.string_field" env:"STRING_FIELD"`
	BoolField   bool     `toml:"test.bool_field" env:"BOOL_FIELD"`
	IntField    int      `toml:"test.int_field" env:"INT_FIELD"`
	SliceField  []string `toml:"test.slice_field" env:"SLICE_FIELD"`

	// Nested config
	NestedString string `toml:"nested.value" env:"NESTED_VALUE"`
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "hello world"
bool_field = true
int_field = 42
slice_field = ["item1", "item2", "item3"]

[nested]
value = "nested value"
`)

	config := &TestConfig{Config: path}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "hello world" {
		t.Errorf("Expected StringField to be 'hello world', got '%s'", config.StringField)
	}
	if !config.BoolField {
		t.Errorf("Expected BoolField to be true, got %v", config.BoolField)
	}
	if config.IntField != 42 {
		t.Errorf("Expected IntField to be 42, got %d", config.IntField)
	}
	expectedSlice := []string{"item1", "item2", "item3"}
	if !reflect.DeepEqual(config.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v, got %v", expectedSlice, config.SliceField)
	}
	if config.NestedString != "nested value" {
		t.Errorf("Expected NestedString to be 'nested value', got '%s'", config.NestedString)
	}
}

func TestLoadConfigEnvOverridesTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "from file"
int_field = 1
`)

	t.Setenv("LOGSINK_STRING_FIELD", "from env")
	t.Setenv("LOGSINK_INT_FIELD", "99")
	t.Setenv("LOGSINK_BOOL_FIELD", "true")

	config := &TestConfig{Config: path}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "from env" {
		t.Errorf("Expected env to override TOML, got '%s'", config.StringField)
	}
	if config.IntField != 99 {
		t.Errorf("Expected IntField 99, got %d", config.IntField)
	}
	if !config.BoolField {
		t.Errorf("Expected BoolField true from env, got %v", config.BoolField)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config := &TestConfig{Config: "/nonexistent/config.toml", StringField: "default"}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig with missing file should not fail: %v", err)
	}
	if config.StringField != "default" {
		t.Errorf("Expected defaults untouched, got '%s'", config.StringField)
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Port", "port"},
		{"LoggingLevel", "logging-level"},
		{"LoggingFilter", "logging-filter"},
	}
	for _, tt := range tests {
		if got := fieldNameToFlag(tt.in); got != tt.want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeTempConfig(t, `
[logging]
level = "warn"
format = "json"
dir = "/tmp/logs"
app_name = "myapp"
filter = "-vendor::chatty,frontend"
console = false

[logging.namespaces]
"frontend::session" = "debug"
api = "error"
`)

	cfg := LoadLoggingConfig(path)

	if cfg.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Dir != "/tmp/logs" {
		t.Errorf("Dir = %q, want /tmp/logs", cfg.Dir)
	}
	if cfg.AppName != "myapp" {
		t.Errorf("AppName = %q, want myapp", cfg.AppName)
	}
	if cfg.Filter != "-vendor::chatty,frontend" {
		t.Errorf("Filter = %q", cfg.Filter)
	}
	if cfg.Console {
		t.Error("Console should be false when set so in the file")
	}
	if !cfg.Journal {
		t.Error("Journal should keep its default when absent from the file")
	}
	if cfg.Namespaces["frontend::session"] != "debug" {
		t.Errorf("Namespaces = %v", cfg.Namespaces)
	}
	if cfg.Namespaces["api"] != "error" {
		t.Errorf("Namespaces = %v", cfg.Namespaces)
	}
}

func TestLoadLoggingConfigDefaults(t *testing.T) {
	cfg := LoadLoggingConfig("/nonexistent/config.toml")
	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.Console || !cfg.Journal {
		t.Errorf("console/journal defaults should be enabled, got %+v", cfg)
	}
}
