package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Output != OutputExplain {
		t.Errorf("output = %q", cfg.Output)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("catalog path = %q, want in-memory", cfg.Catalog.Path)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestInterpolateEnv(t *testing.T) {
	env := map[string]string{"DB": "/var/fluxo.db", "EMPTY": ""}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		in, want string
	}{
		{"path: ${DB}", "path: /var/fluxo.db"},
		{"path: ${MISSING}", "path: "},
		{"path: ${MISSING:-cat.db}", "path: cat.db"},
		{"path: ${EMPTY:-cat.db}", "path: cat.db"},
		{"path: ${DB:-cat.db}", "path: /var/fluxo.db"},
		{"plain: $DB", "plain: $DB"},
	}
	for _, tt := range tests {
		if got := string(interpolateEnv([]byte(tt.in), getenv)); got != tt.want {
			t.Errorf("interpolateEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fluxo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: ${DATA_DIR:-data}/catalog.db
log:
  level: debug
  format: json
output: sql
repl:
  history: /tmp/fluxo_history
`)
	cfg, err := Load(path, func(string) string { return "" })
	if err != nil {
		t.Fatal(err)
	}

	dir := filepath.Dir(path)
	if cfg.BaseDir != dir {
		t.Errorf("base dir = %q, want %q", cfg.BaseDir, dir)
	}
	if want := filepath.Join(dir, "data", "catalog.db"); cfg.Catalog.Path != want {
		t.Errorf("catalog path = %q, want %q", cfg.Catalog.Path, want)
	}
	if cfg.REPL.History != "/tmp/fluxo_history" {
		t.Errorf("history = %q", cfg.REPL.History)
	}
	if cfg.Output != OutputSQL || cfg.Log.Format != "json" {
		t.Errorf("got %+v", cfg)
	}
	if cfg.REPL.Prompt != "fluxo> " {
		t.Errorf("default prompt lost: %q", cfg.REPL.Prompt)
	}
	level, err := cfg.LogLevel()
	if err != nil || level.String() != "DEBUG" {
		t.Errorf("LogLevel = %v, %v", level, err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), func(string) string { return "" })
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != OutputExplain {
		t.Errorf("output = %q", cfg.Output)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "output: json\n")
	cfg, err := Load("", func(k string) string {
		if k == "FLUXO_CONFIG" {
			return path
		}
		return ""
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("output = %q", cfg.Output)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "outptu: sql\n", "failed to parse config"},
		{"bad yaml", "log: [\n", "failed to parse config"},
		{"bad level", "log:\n  level: loud\n", `invalid log level: "loud"`},
		{"bad output", "output: xml\n", `invalid output: "xml"`},
		{"bad format", "log:\n  format: xml\n", `invalid log format: "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), func(string) string { return "" })
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %q, want it to contain %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), os.Getenv); err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var sb strings.Builder
	cfg := Defaults()
	logger, err := cfg.Logger(&sb)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	if out := sb.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Errorf("got %q", out)
	}
}
