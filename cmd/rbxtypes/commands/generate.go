package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rbxtypes/am"
	"github.com/teranos/rbxtypes/logger"
	"github.com/teranos/rbxtypes/typegen"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the types module and patch create/init",
		Long: `Fetch the API dump and corrections, emit Luau record types for the
selected classes, write the types module and patch the create and init modules.

All three output files are computed before the first write, so a missing
anchor leaves every file untouched.

Examples:
  rbxtypes generate
  rbxtypes generate --all --compact
  rbxtypes generate --classes Frame,TextLabel --stdout
  rbxtypes generate --api-dump ./API-Dump.json --corrections ./Corrections.json`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	addGenerationFlags(cmd)
	cmd.Flags().Bool("stdout", false, "Print the types module to stdout and write nothing")
	return cmd
}

// addGenerationFlags registers the flags shared by generate and check
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("all", false, "Generate every creatable class in the dump")
	cmd.Flags().Bool("compact", false, "Minify the types module")
	cmd.Flags().StringSlice("classes", nil, "Classes to generate (replaces the configured allow list)")
	cmd.Flags().String("api-dump", "", "API dump URL or path")
	cmd.Flags().String("corrections", "", "Corrections URL or path")
}

// applyGenerationFlags overrides config values with flags the user set
func applyGenerationFlags(cmd *cobra.Command, cfg *am.Config) {
	flags := cmd.Flags()
	if flags.Changed("all") {
		cfg.Classes.All, _ = flags.GetBool("all")
	}
	if flags.Changed("compact") {
		cfg.Format.Compact, _ = flags.GetBool("compact")
	}
	if flags.Changed("classes") {
		cfg.Classes.Allow, _ = flags.GetStringSlice("classes")
	}
	if flags.Changed("api-dump") {
		cfg.Sources.APIDump, _ = flags.GetString("api-dump")
	}
	if flags.Changed("corrections") {
		cfg.Sources.Corrections, _ = flags.GetString("corrections")
	}
}

// generationConfig loads, overrides and validates the config for a run
func generationConfig(cmd *cobra.Command) (*am.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	applyGenerationFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := generationConfig(cmd)
	if err != nil {
		return err
	}
	toStdout, _ := cmd.Flags().GetBool("stdout")

	result, err := typegen.Run(cmd.Context(), typegen.NewFetcher(cfg.Sources), cfg)
	if err != nil {
		return err
	}

	if toStdout {
		fmt.Fprint(cmd.OutOrStdout(), result.Types)
		return nil
	}

	if err := typegen.Write(cmd.Context(), result, cfg.Output); err != nil {
		return err
	}

	pterm.Success.Printfln("Generated %d classes", len(result.Classes))
	pterm.Printfln("  %s", cfg.Output.Types)
	pterm.Printfln("  %s (after %q)", cfg.Output.Create, cfg.Output.CreateAnchor)
	pterm.Printfln("  %s (after %q)", cfg.Output.Init, cfg.Output.InitAnchor)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputProgress) || len(result.Classes) <= 10 {
		pterm.Printfln("  classes: %s", strings.Join(result.Classes, ", "))
	}
	return nil
}
