package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/rbxtypes/am"
	"github.com/teranos/rbxtypes/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, validate or create configuration",
		Long: `Manage rbxtypes configuration.

Examples:
  rbxtypes config show                 # Effective configuration as TOML
  rbxtypes config show --format json
  rbxtypes config validate
  rbxtypes config validate ./ci.toml   # One file over the defaults
  rbxtypes config init                 # Write a starter rbxtypes.toml`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")

	validate := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate the effective configuration, or one config file on its own",
		Long: `Validate the effective configuration.

With a path, only that file is loaded over the defaults: no project
rbxtypes.toml discovery and no RBXTYPES_* environment overrides.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfigValidate,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file (the old one is kept as .back1)")

	cmd.AddCommand(show, validate, initCmd)
	return cmd
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# rbxtypes configuration\n%s", data)

	case "toml":
		data, err := am.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# rbxtypes configuration\n%s", data)

	default:
		return errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	var cfg *am.Config
	var err error
	if len(args) == 1 {
		cfg, err = am.LoadFromFile(args[0])
	} else {
		cfg, err = loadConfig(cmd)
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := am.ProjectConfigName
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it; the current file is kept as a backup")
	}

	if err := am.WriteConfig(am.Defaults(), path); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}
