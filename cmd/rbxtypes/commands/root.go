// Package commands implements the rbxtypes command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/rbxtypes/am"
	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/logger"
)

// NewRootCmd builds the rbxtypes command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rbxtypes",
		Short: "Generate Luau type definitions for Roblox classes",
		Long: `rbxtypes - Luau type definitions for Roblox classes.

Reads the Roblox API dump and a corrections overlay, emits one record type per
selected class and splices the results into your create and init modules.

Configuration sources (later overrides earlier):
  1. Built-in defaults
  2. ./rbxtypes.toml (searched up from the working directory)
  3. --config file
  4. RBXTYPES_* environment variables
  5. Command line flags

Examples:
  rbxtypes                           # Same as rbxtypes generate
  rbxtypes generate --compact        # Minified types module
  rbxtypes generate --stdout         # Print the types module, write nothing
  rbxtypes check                     # Fail if generated files are stale
  rbxtypes classes --chain TextLabel # Show a superclass chain
  rbxtypes config show --format yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("json-logs")
			if err := logger.Initialize(jsonLogs, verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger.Debugw("Logger ready",
				"verbosity", logger.LevelName(verbosity),
				"json", jsonLogs)
			return nil
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	root.PersistentFlags().StringP("config", "c", "", "Config file (merged over ./rbxtypes.toml)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newClassesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// loadConfig loads the layered configuration and applies its log settings.
// The logger is re-initialized when the config asks for JSON logs and the
// flag did not.
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := am.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger.SetTheme(cfg.Log.Theme)
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); cfg.Log.JSON && !jsonLogs {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(true, verbosity); err != nil {
			return nil, errors.Wrap(err, "failed to initialize logger")
		}
	}
	return cfg, nil
}
