package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beantownbytes/menuentry/internal/config"
)

func newConfigCmd() *cobra.Command {
	configC := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Commands for creating and inspecting the menuentry configuration file.

Settings can also be set via environment variables with the MENUENTRY_
prefix, e.g. MENUENTRY_UI_SHOW_HIDDEN=true.`,
	}

	initC := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write the default configuration to the config path.

Use --force to overwrite an existing file.

Examples:
  menuentry config init                        # Write the default path
  menuentry config init --config ./menu.yaml   # Write somewhere else
  menuentry config init --force                # Overwrite`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
	initC.Flags().BoolP("force", "f", false, "Overwrite existing configuration")

	showC := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after defaults, environment variables and flags are applied.",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	pathC := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	configC.AddCommand(initC, showC, pathC)
	return configC
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("config")

	written, err := config.Init(path, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", written)
	fmt.Fprintln(out, "Edit it to change directories, logging and UI defaults.")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
