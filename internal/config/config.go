// Package config loads fluxo settings from a YAML file.
package config

// Output formats accepted by Config.Output.
const (
	OutputExplain = "explain"
	OutputSQL     = "sql"
	OutputJSON    = "json"
)

// Config is the fluxo configuration.
type Config struct {
	// BaseDir is the directory holding the loaded file. Relative paths in
	// the file are resolved against it.
	BaseDir string `yaml:"-"`

	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
	Output  string        `yaml:"output"`
	REPL    REPLConfig    `yaml:"repl"`
}

// CatalogConfig locates the persistent catalog. An empty path keeps the
// catalog in memory.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type REPLConfig struct {
	History string `yaml:"history"`
	Prompt  string `yaml:"prompt"`
}

// Defaults returns the configuration used when no file is found.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputExplain,
		REPL: REPLConfig{
			Prompt: "fluxo> ",
		},
	}
}
