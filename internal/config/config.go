// Package config resolves the toolkit configuration from defaults, an
// optional YAML file and EPIC_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

// DefaultFile is looked up in the working directory when no explicit
// path is given.
const DefaultFile = "epic.yaml"

// Config holds every tunable of the toolkit.
type Config struct {
	// DesignLife in years used when a design document does not set one.
	DesignLife float64 `mapstructure:"design_life"`

	// Listen address of the HTTP server.
	Listen string `mapstructure:"listen"`

	// StorePath locates the project store database.
	StorePath string `mapstructure:"store_path"`

	Log Log `mapstructure:"log"`
}

// Log tunes the slog handler.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`
}

// Default returns the configuration used without a file or environment.
func Default() Config {
	return Config{
		DesignLife: epic.DefaultDesignLife,
		Listen:     "0.0.0.0:8575",
		StorePath:  defaultStorePath(),
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load resolves the configuration. A non empty path must exist, the
// default file may be absent.
func Load(path string) (Config, error) {
	raw := map[string]any{}

	data, err := os.ReadFile(firstNonEmpty(path, DefaultFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parsing configuration: %w", err)
		}
	case os.IsNotExist(err) && path == "":
		// No explicit file requested, defaults apply.
	default:
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}

	applyEnv(raw)

	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, fmt.Errorf("building configuration decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	return config, config.validate()
}

func (c Config) validate() error {
	if c.DesignLife < 0 {
		return fmt.Errorf("design life cannot be negative, got %v", c.DesignLife)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// applyEnv layers EPIC_* variables over the file values.
func applyEnv(raw map[string]any) {
	setenv := func(key string, envName string) {
		if value := os.Getenv(envName); value != "" {
			raw[key] = value
		}
	}
	setenv("design_life", "EPIC_DESIGN_LIFE")
	setenv("listen", "EPIC_LISTEN")
	setenv("store_path", "EPIC_STORE_PATH")

	logRaw, ok := raw["log"].(map[string]any)
	if !ok {
		logRaw = map[string]any{}
	}
	if value := os.Getenv("EPIC_LOG_LEVEL"); value != "" {
		logRaw["level"] = value
	}
	if value := os.Getenv("EPIC_LOG_FORMAT"); value != "" {
		logRaw["format"] = value
	}
	if len(logRaw) > 0 {
		raw["log"] = logRaw
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "epic-projects.db"
	}
	return filepath.Join(home, ".epic", "projects.db")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
