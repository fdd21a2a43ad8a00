package cli

import (
	"github.com/cubahno/schematest/internal/openapi"
	"github.com/spf13/cobra"
)

func newOpenAPICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "openapi",
		Short: "Print all schemas as OpenAPI components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}

			doc, err := openapi.Components(c.Registry())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
}
