package config

import (
	"path/filepath"
)

const (
	// ConfigFileName is looked up in the base directory.
	ConfigFileName = "schematest.yml"

	// EnvFileName is loaded into the environment by the CLI.
	EnvFileName = ".env"
)

// Paths holds the locations derived from the base directory.
type Paths struct {
	Base        string
	ConfigFile  string
	EnvFile     string
	Definitions string
}

func NewPaths(baseDir string) Paths {
	return Paths{
		Base:        baseDir,
		ConfigFile:  filepath.Join(baseDir, ConfigFileName),
		EnvFile:     filepath.Join(baseDir, EnvFileName),
		Definitions: filepath.Join(baseDir, "schemas"),
	}
}
