package cli

import (
	"github.com/cubahno/schematest/internal/sample"
	"github.com/spf13/cobra"
)

func newSampleCmd(a *app) *cobra.Command {
	var (
		version string
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "sample NAME",
		Short: "Generate a payload matching a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.root(args[0], version)
			if err != nil {
				return err
			}

			payload, err := sample.New(seed).Generate(root)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), payload)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Schema version, e.g. 2 or v2 (default unversioned)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed of the fake data generator (0 picks a random one)")
	return cmd
}
