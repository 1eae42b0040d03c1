package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beantownbytes/menuentry/internal/config"
	menuerrors "github.com/beantownbytes/menuentry/internal/errors"
	"github.com/beantownbytes/menuentry/internal/logging"
	"github.com/beantownbytes/menuentry/internal/store"
)

// session is what every command that touches entries needs: the effective
// configuration, a logger and a store over the configured directories.
type session struct {
	cfg    *config.Config
	logger *logging.Logger
	store  *store.Store
}

// openSession loads the config, applies flag overrides and sets up logging.
// console mirrors log output to stderr when --debug is set; the TUI passes
// false because it owns the terminal.
func openSession(cmd *cobra.Command, console bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	lc, err := cfg.LoggerConfig(debug)
	if err != nil {
		return nil, configError("", err)
	}
	lc.Console = console && debug
	if err := logging.InitGlobal(&lc); err != nil {
		return nil, menuerrors.Wrap(err, menuerrors.ErrConfig, "failed to set up logging").
			WithDetails("dir", lc.LogDir)
	}
	logger := logging.Global()

	s := store.New(store.Options{
		UserDir:    cfg.Directories.User,
		SystemDirs: cfg.Directories.System,
		LockPath:   cfg.Directories.LockFile,
	}, logger.With("component", "store"))

	return &session{cfg: cfg, logger: logger, store: s}, nil
}

func (s *session) close() {
	_ = logging.CloseGlobal()
}

// loadConfig reads the config file named by --config (or the default path)
// and applies --user-dir and --system-dir.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	userDir, _ := flags.GetString("user-dir")
	systemDirs, _ := flags.GetStringArray("system-dir")

	// The XDG defaults are meaningless without a home directory.
	if userDir == "" {
		if _, err := os.UserHomeDir(); err != nil {
			return nil, menuerrors.NoHomeDirectory(err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configError(configPath, err)
	}

	if userDir != "" {
		abs, err := filepath.Abs(userDir)
		if err != nil {
			return nil, menuerrors.ConfigValidationError("--user-dir", err.Error(), nil)
		}
		cfg.Directories.User = abs
	}
	if flags.Changed("system-dir") {
		dirs := make([]string, 0, len(systemDirs))
		for _, d := range systemDirs {
			abs, err := filepath.Abs(d)
			if err != nil {
				return nil, menuerrors.ConfigValidationError("--system-dir", err.Error(), nil)
			}
			dirs = append(dirs, abs)
		}
		cfg.Directories.System = dirs
	}

	if err := cfg.Validate(); err != nil {
		return nil, configError(configPath, err)
	}
	return cfg, nil
}

// configError turns a load or validation failure into an error with a
// suggestion for the user.
func configError(path string, err error) error {
	if path == "" {
		path = config.DefaultConfigPath()
	}

	var verrs config.ValidationErrors
	if menuerrors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		var options []string
		if first.Field == "logging.level" {
			options = []string{"debug", "info", "warn", "error"}
		}
		e := menuerrors.ConfigValidationError(first.Field, first.Error(), options)
		if len(verrs) > 1 {
			e = e.WithDetails("also", fmt.Sprintf("%d more invalid fields", len(verrs)-1))
		}
		return e
	}

	return menuerrors.ConfigParseError(path, err)
}
