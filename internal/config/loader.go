// Package config provides configuration loading and management for menuentry.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. MENUENTRY_DIRECTORIES_USER.
const EnvPrefix = "MENUENTRY"

// listSeparator splits list values given through the environment,
// matching the XDG_DATA_DIRS convention.
const listSeparator = ":"

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up viper
	v.SetConfigType("yaml")

	// Set up environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it.
	setDefaults(v, NewConfig())

	return &Loader{v: v}
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("directories.user", c.Directories.User)
	v.SetDefault("directories.system", c.Directories.System)
	v.SetDefault("directories.lock_file", c.Directories.LockFile)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.dir", c.Logging.Dir)
	v.SetDefault("logging.json", c.Logging.JSON)
	v.SetDefault("logging.max_files", c.Logging.MaxFiles)
	v.SetDefault("logging.max_age", c.Logging.MaxAge)
	v.SetDefault("ui.show_hidden", c.UI.ShowHidden)
	v.SetDefault("ui.confirm_delete", c.UI.ConfirmDelete)
	v.SetDefault("ui.auto_refresh", c.UI.AutoRefresh)
}

// LoadConfig loads configuration from the specified path, merges environment
// variables, applies defaults, and validates the result. A missing file is
// not an error: the defaults are used. If path is empty, DefaultConfigPath
// is used.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)

		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "failed to read config file",
				Err:     err,
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to stat config file",
			Err:     err,
		}
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	// Apply defaults for any unset values
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// ConfigFileUsed returns the file the last LoadConfig read, or "" when
// only defaults and environment were used.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// It composes the standard mapstructure hooks with our custom ones.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(listSeparator),
	)
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}
