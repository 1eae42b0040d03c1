// Package cmd provides the CLI commands for menuentry.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	menuerrors "github.com/beantownbytes/menuentry/internal/errors"
	"github.com/beantownbytes/menuentry/internal/hooks"
	"github.com/beantownbytes/menuentry/internal/store"
	"github.com/beantownbytes/menuentry/internal/tui"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

// newRootCmd builds the full command tree. Tests call it to get commands
// without state left over from earlier runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "menuentry",
		Short: "Edit desktop menu entries from the terminal",
		Long: `menuentry lists the desktop entries of the system and user application
directories and lets you edit, copy and delete them from a terminal UI.

System entries are never written in place: saving one writes a copy to
your user directory, which then shadows the original.

Examples:
  menuentry                          # Start the editor
  menuentry --user-dir ~/tmp/apps    # Edit another user directory
  menuentry list --all               # Print every entry, hidden ones too`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/menuentry/config.yaml)")
	flags.String("user-dir", "", "Writable entry directory (overrides directories.user)")
	flags.StringArray("system-dir", nil, "Read-only entry directory, repeatable (overrides directories.system)")
	flags.Bool("debug", false, "Log at debug level")

	root.AddCommand(newListCmd(), newConfigCmd(), newVersionCmd())
	return root
}

// runRoot starts the TUI.
func runRoot(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close()

	sess.logger.Info("starting editor",
		"version", Version,
		"user_dir", sess.cfg.Directories.User,
		"system_dirs", sess.cfg.Directories.System,
		"hooks", len(sess.cfg.Hooks.PostWrite))

	opts := tui.Options{
		UserDir:       sess.cfg.Directories.User,
		ShowHidden:    sess.cfg.UI.ShowHidden,
		ConfirmDelete: sess.cfg.UI.ConfirmDelete,
		Hooks:         hooks.NewManager(sess.cfg.Hooks.PostWrite, sess.logger.With("component", "hooks")),
		Logger:        sess.logger.With("component", "tui"),
	}

	if sess.cfg.UI.AutoRefresh {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		w, err := sess.store.Watch(ctx, store.DefaultDebounce)
		if err != nil {
			sess.logger.Warn("auto-refresh disabled", "error", err)
		} else {
			defer w.Close()
			opts.Changes = w.Changes()
		}
	}

	if err := tui.Run(sess.store, opts); err != nil {
		sess.logger.Error("editor exited with error", "error", err)
		return fmt.Errorf("failed to run editor (log: %s): %w", sess.logger.LogPath(), err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("menuentry {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders err for the terminal, with details and a suggestion
// when it carries them.
func formatError(err error) string {
	var e *menuerrors.Error
	if menuerrors.As(err, &e) {
		return e.Format()
	}
	return "Error: " + err.Error() + "\n"
}
