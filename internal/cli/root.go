// Package cli implements the schematest command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cubahno/schematest/internal/catalog"
	"github.com/cubahno/schematest/pkg/config"
	"github.com/cubahno/schematest/pkg/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app holds what every command shares once the root flags are parsed.
type app struct {
	configFile string
	domain     string
	paths      []string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "schematest",
		Short: "Define, compile and check JSON schemas",
		Long: `schematest compiles versioned schema definitions into JSON Schema draft-07 documents,
validates payloads against them and generates sample payloads.

Definitions are YAML files loaded from the definition paths (default: ./schemas).

Exit Codes:
  0  - Success
  1  - General error (or payload does not match)
  2  - CLI usage error (invalid arguments or flags)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default ./"+config.ConfigFileName+")")
	flags.StringVar(&a.domain, "domain", "", "Domain used in the $id of compiled documents")
	flags.StringArrayVar(&a.paths, "path", nil, "Definition directory or file (repeatable)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")

	cmd.AddCommand(
		newListCmd(a),
		newCompileCmd(a),
		newValidateCmd(a),
		newSampleCmd(a),
		newOpenAPICmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command and reports the error on stderr.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, ErrPayloadInvalid) {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
	}
	return err
}

func (a *app) load(cmd *cobra.Command) error {
	baseDir, err := os.Getwd()
	if err != nil {
		return err
	}

	_ = godotenv.Load(filepath.Join(baseDir, config.EnvFileName))

	configFile := a.configFile
	if configFile == "" {
		configFile = config.NewPaths(baseDir).ConfigFile
	}

	cfg, err := config.Load(baseDir, configFile)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configFile, err)
	}

	if a.domain != "" {
		cfg.Domain = a.domain
	}
	if len(a.paths) > 0 {
		cfg.DefinitionPaths = a.paths
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	a.cfg = cfg
	a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	slog.SetDefault(a.logger)

	return nil
}

func (a *app) catalog() (*catalog.Catalog, error) {
	c := catalog.New(a.cfg, a.logger)
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// root loads the catalog and looks up a root by name and version flag.
func (a *app) root(name, version string) (schema.Root, error) {
	v, err := schema.ParseVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, version)
	}

	c, err := a.catalog()
	if err != nil {
		return nil, err
	}
	return c.Registry().Get(name, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
