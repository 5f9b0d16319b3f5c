package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/servalproject/dataman/style"
)

// DefaultPath is read when no config path is given.
const DefaultPath = "config.yml"

// Default returns the configuration used when no file is present.
func Default() AppConfig {
	return AppConfig{
		Conversion: ConversionConfig{Task: "binloctokml"},
		Logging:    LoggingConfig{Format: "text"},
	}
}

// Load reads and validates the configuration at path. An empty path reads
// DefaultPath and falls back to Default when that file does not exist; an
// explicit path must be readable.
func Load(path string) (AppConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return AppConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration. Unset values keep their
// defaults.
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Conversion.Task == "" {
		cfg.Conversion.Task = Default().Conversion.Task
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = Default().Logging.Format
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := style.Parse(cfg.Conversion.Style); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config conversion.style: %w", err)
	}
	return cfg, nil
}
