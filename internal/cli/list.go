package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			roots := c.Registry().Roots()
			if len(roots) == 0 {
				fmt.Fprintln(out, MutedStyle.Render("No schemas found in "+fmt.Sprint(a.cfg.DefinitionPaths)))
				return nil
			}

			for _, root := range roots {
				fmt.Fprintf(out, "%s %s %s %s\n",
					NameStyle.Render(root.Name()),
					root.Version(),
					root.Kind(),
					MutedStyle.Render(root.Location()))
			}
			return nil
		},
	}
}
