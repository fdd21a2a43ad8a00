package cli

import (
	"github.com/spf13/cobra"
)

func newCompileCmd(a *app) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "compile NAME",
		Short: "Print the compiled JSON Schema document of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.root(args[0], version)
			if err != nil {
				return err
			}

			doc, err := root.Compile(a.cfg.Domain)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Schema version, e.g. 2 or v2 (default unversioned)")
	return cmd
}
