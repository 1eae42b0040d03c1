package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	menuerrors "github.com/beantownbytes/menuentry/internal/errors"
)

// MarshalYAML writes MaxAge as a duration string ("168h0m0s") rather than
// nanoseconds, so the file stays readable and loads back through viper.
func (c LoggingConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Level    string `yaml:"level"`
		Dir      string `yaml:"dir"`
		JSON     bool   `yaml:"json"`
		MaxFiles int    `yaml:"max_files"`
		MaxAge   string `yaml:"max_age"`
	}{
		Level:    c.Level,
		Dir:      c.Dir,
		JSON:     c.JSON,
		MaxFiles: c.MaxFiles,
		MaxAge:   c.MaxAge.String(),
	}, nil
}

// MarshalYAML writes Timeout as a duration string for the same reason.
func (h HookDefinition) MarshalYAML() (interface{}, error) {
	out := struct {
		Command string `yaml:"command"`
		Timeout string `yaml:"timeout,omitempty"`
	}{Command: h.Command}
	if h.Timeout > 0 {
		out.Timeout = h.Timeout.String()
	}
	return out, nil
}

// Save writes cfg as YAML to path, creating parent directories.
// If path is empty, DefaultConfigPath is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return menuerrors.Wrap(err, menuerrors.ErrConfig, "failed to marshal configuration")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return menuerrors.Wrap(err, menuerrors.ErrConfig, "failed to create config directory").
			WithDetails("path", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return menuerrors.Wrap(err, menuerrors.ErrConfig, "failed to write config file").
			WithDetails("path", path)
	}
	return nil
}

// Init writes the default configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) (string, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, menuerrors.ConfigExists(path)
	}
	return path, Save(NewConfig(), path)
}
