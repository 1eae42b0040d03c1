// Package config provides configuration data structures for menuentry.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/beantownbytes/menuentry/internal/logging"
)

// AppName names the XDG subdirectories menuentry uses.
const AppName = "menuentry"

// Config represents the complete menuentry configuration loaded from config.yaml.
type Config struct {
	Directories DirectoriesConfig `yaml:"directories" json:"directories" mapstructure:"directories"`
	Logging     LoggingConfig     `yaml:"logging"     json:"logging"     mapstructure:"logging"`
	UI          UIConfig          `yaml:"ui"          json:"ui"          mapstructure:"ui"`
	Hooks       HooksConfig       `yaml:"hooks"       json:"hooks"       mapstructure:"hooks"`
}

// DirectoriesConfig configures where entries are read from and written to.
type DirectoriesConfig struct {
	// User is the writable entry directory (default: $XDG_DATA_HOME/applications).
	User string `yaml:"user" json:"user" mapstructure:"user"`
	// System are the read-only entry directories, first wins on duplicate keys
	// (default: each $XDG_DATA_DIRS entry + /applications).
	System []string `yaml:"system" json:"system" mapstructure:"system"`
	// LockFile is flock'ed while writing. Empty disables locking.
	LockFile string `yaml:"lock_file" json:"lock_file" mapstructure:"lock_file"`
}

// LoggingConfig configures the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	// Dir is the log directory (default: $XDG_STATE_HOME/menuentry/logs).
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
	// JSON switches the log format from text to JSON.
	JSON bool `yaml:"json" json:"json" mapstructure:"json"`
	// MaxFiles is how many log files to keep (default: 10).
	MaxFiles int `yaml:"max_files" json:"max_files" mapstructure:"max_files"`
	// MaxAge is how long to keep log files (default: 168h).
	MaxAge time.Duration `yaml:"max_age" json:"max_age" mapstructure:"max_age"`
}

// UIConfig configures the interactive editor.
type UIConfig struct {
	// ShowHidden lists NoDisplay and Hidden entries (default: false).
	ShowHidden bool `yaml:"show_hidden" json:"show_hidden" mapstructure:"show_hidden"`
	// ConfirmDelete asks before deleting an entry (default: true).
	ConfirmDelete bool `yaml:"confirm_delete" json:"confirm_delete" mapstructure:"confirm_delete"`
	// AutoRefresh reloads the listing when entry files change on disk (default: true).
	AutoRefresh bool `yaml:"auto_refresh" json:"auto_refresh" mapstructure:"auto_refresh"`
}

// HooksConfig configures commands run after the editor writes to the user
// directory.
type HooksConfig struct {
	// PostWrite runs in order after every successful save or delete.
	PostWrite []HookDefinition `yaml:"post_write,omitempty" json:"post_write,omitempty" mapstructure:"post_write"`
}

// HookDefinition is one shell command. ${EVENT}, ${ENTRY_ID}, ${ENTRY_PATH}
// and ${USER_DIR} are expanded in Command, each as one quoted shell word.
type HookDefinition struct {
	Command string `yaml:"command" json:"command" mapstructure:"command"`
	// Timeout bounds one run (default: 10s).
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" mapstructure:"timeout"`
}

// Default values.
const (
	DefaultLogLevel    = "info"
	DefaultMaxLogFiles = 10
	DefaultMaxLogAge   = 7 * 24 * time.Hour
	applicationsDir    = "applications"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/menuentry/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultUserDir returns $XDG_DATA_HOME/applications.
func DefaultUserDir() string {
	return filepath.Join(xdg.DataHome, applicationsDir)
}

// DefaultSystemDirs returns the applications directory of every
// $XDG_DATA_DIRS entry, in XDG order.
func DefaultSystemDirs() []string {
	dirs := make([]string, 0, len(xdg.DataDirs))
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, applicationsDir))
	}
	return dirs
}

// DefaultLockFile returns $XDG_STATE_HOME/menuentry/write.lock.
func DefaultLockFile() string {
	return filepath.Join(xdg.StateHome, AppName, "write.lock")
}

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		Directories: DirectoriesConfig{
			User:     DefaultUserDir(),
			System:   DefaultSystemDirs(),
			LockFile: DefaultLockFile(),
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Dir:      logging.DefaultLogDir(),
			JSON:     false,
			MaxFiles: DefaultMaxLogFiles,
			MaxAge:   DefaultMaxLogAge,
		},
		UI: UIConfig{
			ShowHidden:    false,
			ConfirmDelete: true,
			AutoRefresh:   true,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.Directories.User == "" {
		c.Directories.User = defaults.Directories.User
	}
	if c.Directories.System == nil {
		c.Directories.System = defaults.Directories.System
	}
	// An empty LockFile is a valid way to turn locking off.

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = defaults.Logging.Dir
	}
	if c.Logging.MaxFiles == 0 {
		c.Logging.MaxFiles = defaults.Logging.MaxFiles
	}
	if c.Logging.MaxAge == 0 {
		c.Logging.MaxAge = defaults.Logging.MaxAge
	}
}

// LoggerConfig converts the logging section into a logging.Config.
// debug forces the debug level.
func (c *Config) LoggerConfig(debug bool) (logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.Config{}, err
	}
	if debug {
		level = logging.LevelDebug
	}
	return logging.Config{
		Level:       level,
		LogDir:      c.Logging.Dir,
		MaxLogFiles: c.Logging.MaxFiles,
		MaxLogAge:   c.Logging.MaxAge,
		JSONFormat:  c.Logging.JSON,
	}, nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Validate directories
	if c.Directories.User == "" {
		errs = append(errs, &ValidationError{Field: "directories.user", Message: "is required"})
	} else if !filepath.IsAbs(c.Directories.User) {
		errs = append(errs, &ValidationError{Field: "directories.user", Message: "must be an absolute path"})
	}
	user := filepath.Clean(c.Directories.User)
	for i, dir := range c.Directories.System {
		field := fmt.Sprintf("directories.system[%d]", i)
		switch {
		case strings.TrimSpace(dir) == "":
			errs = append(errs, &ValidationError{Field: field, Message: "must not be empty"})
		case !filepath.IsAbs(dir):
			errs = append(errs, &ValidationError{Field: field, Message: "must be an absolute path"})
		case c.Directories.User != "" && filepath.Clean(dir) == user:
			errs = append(errs, &ValidationError{Field: field, Message: "must differ from directories.user"})
		}
	}
	if c.Directories.LockFile != "" && !filepath.IsAbs(c.Directories.LockFile) {
		errs = append(errs, &ValidationError{Field: "directories.lock_file", Message: "must be an absolute path"})
	}

	// Validate logging
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "logging.level",
				Message: "must be 'debug', 'info', 'warn', or 'error'",
			})
		}
	}
	if c.Logging.Dir != "" && !filepath.IsAbs(c.Logging.Dir) {
		errs = append(errs, &ValidationError{Field: "logging.dir", Message: "must be an absolute path"})
	}
	if c.Logging.MaxFiles < 0 {
		errs = append(errs, &ValidationError{Field: "logging.max_files", Message: "must be non-negative"})
	}
	if c.Logging.MaxAge < 0 {
		errs = append(errs, &ValidationError{Field: "logging.max_age", Message: "must be non-negative"})
	}

	// Validate hooks
	for i, h := range c.Hooks.PostWrite {
		field := fmt.Sprintf("hooks.post_write[%d]", i)
		if strings.TrimSpace(h.Command) == "" {
			errs = append(errs, &ValidationError{Field: field + ".command", Message: "is required"})
		}
		if h.Timeout < 0 {
			errs = append(errs, &ValidationError{Field: field + ".timeout", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
