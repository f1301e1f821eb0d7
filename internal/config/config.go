package config

// Viper configuration loader: defaults, gallery.yaml, GALLERY_* env and global flags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory
const FileName = "gallery.yaml"

// EnvPrefix prefixes environment overrides, e.g. GALLERY_BACKEND
const EnvPrefix = "GALLERY"

// Config holds the merged configuration
type Config struct {
	Backend string `mapstructure:"backend" yaml:"backend"`

	SQLite struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"sqlite" yaml:"sqlite"`

	Postgres struct {
		DSN    string `mapstructure:"dsn" yaml:"dsn"`
		Schema string `mapstructure:"schema" yaml:"schema"`
	} `mapstructure:"postgres" yaml:"postgres"`

	Logging struct {
		Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
		Format string `mapstructure:"format" yaml:"format"` // text or json
	} `mapstructure:"logging" yaml:"logging"`

	Output struct {
		Format string `mapstructure:"format" yaml:"format"` // pretty or json
	} `mapstructure:"output" yaml:"output"`

	Search struct {
		MaxSubsetQueries int `mapstructure:"max_subset_queries" yaml:"max_subset_queries"`
		Concurrency      int `mapstructure:"concurrency" yaml:"concurrency"`
		DefaultLimit     int `mapstructure:"default_limit" yaml:"default_limit"`
	} `mapstructure:"search" yaml:"search"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"backend":     "backend",
	"sqlite-path": "sqlite.path",
	"pg-dsn":      "postgres.dsn",
	"pg-schema":   "postgres.schema",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
	"format":      "output.format",
	"config":      "",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "sqlite")
	v.SetDefault("sqlite.path", "gallery.db")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.schema", "gallery")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("output.format", "pretty")
	v.SetDefault("search.max_subset_queries", 128)
	v.SetDefault("search.concurrency", 4)
	v.SetDefault("search.default_limit", 20)
}

// BindFlags registers the global flags on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./"+FileName+" if present)")
	fs.String("backend", "", "backend: sqlite|postgres")
	fs.String("sqlite-path", "", "sqlite database file")
	fs.String("pg-dsn", "", "postgres DSN")
	fs.String("pg-schema", "", "postgres schema")
	fs.String("log-level", "", "log level: debug|info|warn|error")
	fs.String("log-format", "", "log format: text|json")
	fs.String("format", "", "output format: pretty|json")
}

// Load merges defaults, the config file, environment and flags (lowest to highest).
// fs may be nil; only flags the user actually set override lower layers.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if key == "" || f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated values
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "sqlite", "postgres", "pg":
	default:
		return fmt.Errorf("unknown backend %q (want sqlite or postgres)", c.Backend)
	}
	switch c.Output.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown output format %q (want pretty or json)", c.Output.Format)
	}
	if c.Search.MaxSubsetQueries < 0 || c.Search.Concurrency < 0 || c.Search.DefaultLimit < 0 {
		return fmt.Errorf("search settings must not be negative")
	}
	return nil
}

// Defaults returns the configuration with nothing but defaults applied
func Defaults() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}
	return cfg, nil
}

// MustDefaults is Defaults for callers without an error path; it panics on failure.
func MustDefaults() *Config {
	cfg, err := Defaults()
	if err != nil {
		panic(err)
	}
	return cfg
}

// WriteStarter writes a starter config file; it refuses to overwrite unless force is set.
func WriteStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	cfg, err := Defaults()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	//nolint:gosec // G306: 0644 is appropriate for config file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
