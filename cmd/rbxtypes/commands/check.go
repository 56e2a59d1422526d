package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/typegen"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that generated files are up to date",
		Long: `Generate in memory and compare against the files on disk.

Exits non-zero when the types module differs, the create module does not end
with the current clauses, or the init re-exports do not follow the anchor.
Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	addGenerationFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := generationConfig(cmd)
	if err != nil {
		return err
	}

	result, err := typegen.Run(cmd.Context(), typegen.NewFetcher(cfg.Sources), cfg)
	if err != nil {
		return err
	}

	drift, err := typegen.Check(cmd.Context(), result, cfg.Output)
	if err != nil {
		return err
	}

	if len(drift) == 0 {
		pterm.Success.Printfln("Generated files are up to date (%d classes)", len(result.Classes))
		return nil
	}

	for _, d := range drift {
		pterm.Warning.Printfln("%s: %s", d.File, d.Reason)
	}
	return errors.WithHint(
		errors.Newf("%d generated file(s) out of date", len(drift)),
		"run rbxtypes generate")
}
