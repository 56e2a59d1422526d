package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/rbxtypes/apidump"
	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/typegen"
)

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List classes in the API dump",
		Long: `List class names from the API dump in dump order.

Examples:
  rbxtypes classes --creatable
  rbxtypes classes --chain TextLabel   # TextLabel GuiLabel GuiObject ... Instance`,
		Args: cobra.NoArgs,
		RunE: runClasses,
	}

	cmd.Flags().Bool("creatable", false, "Only list classes without the NotCreatable tag")
	cmd.Flags().String("chain", "", "Print the superclass chain of one class instead")
	cmd.Flags().String("api-dump", "", "API dump URL or path")
	return cmd
}

func runClasses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-dump") {
		cfg.Sources.APIDump, _ = cmd.Flags().GetString("api-dump")
	}

	data, err := typegen.NewFetcher(cfg.Sources).Fetch(cmd.Context(), cfg.Sources.APIDump)
	if err != nil {
		return errors.Wrap(err, "failed to load API dump")
	}
	dump, err := apidump.DecodeDump(bytes.NewReader(data))
	if err != nil {
		return err
	}
	repo := apidump.NewRepository(dump.Classes)
	out := cmd.OutOrStdout()

	if chain, _ := cmd.Flags().GetString("chain"); chain != "" {
		classes, err := repo.Ancestry(chain)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(classes))
		for _, c := range classes {
			names = append(names, c.Name)
		}
		fmt.Fprintln(out, strings.Join(names, " "))
		return nil
	}

	creatable, _ := cmd.Flags().GetBool("creatable")
	for _, name := range repo.Names() {
		class, err := repo.ByName(name)
		if err != nil {
			return err
		}
		if creatable && class.Tags.Has(apidump.TagNotCreatable) {
			continue
		}
		fmt.Fprintln(out, name)
	}
	return nil
}
