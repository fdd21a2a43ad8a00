package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/cubahno/schematest/internal/types"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// EnvPrefix prefixes environment overrides, e.g. SCHEMATEST_SERVER_PORT.
const EnvPrefix = "SCHEMATEST_"

// Config is the main configuration struct.
// Domain is used to build `$id`s of compiled documents.
// DefinitionPaths are the directories (or files) definitions are loaded from.
type Config struct {
	Domain          string       `koanf:"domain" yaml:"domain"`
	DefinitionPaths []string     `koanf:"definitionPaths" yaml:"definitionPaths"`
	Server          ServerConfig `koanf:"server" yaml:"server"`
	Log             LogConfig    `koanf:"log" yaml:"log"`
	Paths           Paths        `koanf:"-" yaml:"-"`
}

// ServerConfig configures the HTTP schema server.
// Debounce is the quiet period before definition changes are reloaded.
type ServerConfig struct {
	Port     int           `koanf:"port" yaml:"port"`
	Watch    bool          `koanf:"watch" yaml:"watch"`
	Debounce time.Duration `koanf:"debounce" yaml:"debounce"`
}

// LogConfig configures the default logger.
// Format is "text" or "json".
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// envKeys maps environment variables to config keys.
var envKeys = func() map[string]string {
	keys := []string{
		"domain",
		"definitionPaths",
		"server.port",
		"server.watch",
		"server.debounce",
		"log.level",
		"log.format",
	}
	res := make(map[string]string, len(keys))
	for _, key := range keys {
		res[EnvName(key)] = key
	}
	return res
}()

// EnvName returns the environment variable overriding the key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(types.ToSnakeCase(strings.ReplaceAll(key, ".", "_")))
}

// NewDefaultConfig creates a new default config in case the config file is missing, not found or any other error.
func NewDefaultConfig(baseDir string) *Config {
	paths := NewPaths(baseDir)
	return &Config{
		Domain:          "example.com",
		DefinitionPaths: []string{paths.Definitions},
		Server: ServerConfig{
			Port:     2300,
			Debounce: 500 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Paths: paths,
	}
}

// EnsureDefaults fills in values left empty by the file.
func (c *Config) EnsureDefaults() {
	defaults := NewDefaultConfig(c.Paths.Base)

	if c.Domain == "" {
		c.Domain = defaults.Domain
	}
	if len(c.DefinitionPaths) == 0 {
		c.DefinitionPaths = defaults.DefinitionPaths
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.Debounce == 0 {
		c.Server.Debounce = defaults.Server.Debounce
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// Load reads a YAML config file and applies environment overrides.
// A missing file is not an error: defaults and environment are used.
func Load(baseDir, filePath string) (*Config, error) {
	k := koanf.New(".")

	if filePath != "" {
		if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			slog.Debug("Config file not found, using defaults", "path", filePath)
		}
	}

	return fromKoanf(k, baseDir)
}

// MustConfig loads the config file from the base directory.
// In case the file has incorrect YAML it falls back to the default config.
func MustConfig(baseDir string) *Config {
	cfg, err := Load(baseDir, NewPaths(baseDir).ConfigFile)
	if err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return NewDefaultConfig(baseDir)
	}
	return cfg
}

// NewConfigFromContent creates a new config from a YAML file content.
func NewConfigFromContent(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, err
	}
	return fromKoanf(k, "")
}

func fromKoanf(k *koanf.Koanf, baseDir string) (*Config, error) {
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{Paths: NewPaths(baseDir)}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.EnsureDefaults()

	return cfg, nil
}

func envKey(name string) string {
	return envKeys[name]
}
