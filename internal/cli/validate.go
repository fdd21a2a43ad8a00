package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cubahno/schematest/pkg/validation"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "validate NAME FILE|-",
		Short: "Validate a JSON payload against a schema",
		Long:  "Validate a JSON payload read from FILE, or from stdin when FILE is -.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.root(args[0], version)
			if err != nil {
				return err
			}

			payload, err := readPayload(cmd, args[1])
			if err != nil {
				return err
			}

			v := validation.New(validation.WithDomain(a.cfg.Domain), validation.WithLogger(a.logger))
			errs, err := v.Validate(payload, root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintln(out, SuccessStyle.Render("✓ payload matches "+root.Name()+" "+root.Version().String()))
				return nil
			}

			for _, msg := range errs {
				fmt.Fprintln(out, ErrorStyle.Render("✗ "+msg))
			}
			return ErrPayloadInvalid
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Schema version, e.g. 2 or v2 (default unversioned)")
	return cmd
}

func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
