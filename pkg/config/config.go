// Package config merges defaults, an optional config file, environment
// variables and command-line flags into the settings for one scan.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TECHSCAN_REPORTER.
const EnvPrefix = "TECHSCAN"

// Keys, shared by files, environment and flag bindings.
const (
	KeyExclude  = "exclude"
	KeyReporter = "reporter"
	KeyWorkers  = "workers"
	KeyNoIgnore = "no_ignore"
)

// flagNames maps config keys to the command-line flags that override them.
var flagNames = map[string]string{
	KeyExclude:  "exclude",
	KeyReporter: "reporter",
	KeyWorkers:  "workers",
	KeyNoIgnore: "no-ignore",
}

// Config holds the effective scan settings
type Config struct {
	Exclude  []string `mapstructure:"exclude"`
	Reporter string   `mapstructure:"reporter"`
	Workers  int      `mapstructure:"workers"`
	NoIgnore bool     `mapstructure:"no_ignore"`
}

var defaultConfig = Config{
	Exclude:  []string{},
	Reporter: "json",
	Workers:  1,
	NoIgnore: false,
}

// Default returns the built-in settings.
func Default() *Config {
	c := defaultConfig
	c.Exclude = []string{}
	return &c
}

// ErrConfig matches every ConfigError.
var ErrConfig = errors.New("configuration error")

// ConfigError reports a config file that could not be read, parsed or
// validated.
type ConfigError struct {
	Path       string
	Err        error
	Violations []string
}

func (e *ConfigError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("invalid config file: %s:\n  - %s", e.Path, strings.Join(e.Violations, "\n  - "))
	}
	return fmt.Sprintf("failed to load config file: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Load resolves the settings. Sources from lowest to highest precedence:
// defaults, the file at path (skipped when empty), TECHSCAN_* environment
// variables, then flags in fs that were set explicitly. A flag value replaces
// the lower value wholesale; exclude lists are not merged.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyExclude, defaultConfig.Exclude)
	v.SetDefault(KeyReporter, defaultConfig.Reporter)
	v.SetDefault(KeyWorkers, defaultConfig.Workers)
	v.SetDefault(KeyNoIgnore, defaultConfig.NoIgnore)

	if path != "" {
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, name := range flagNames {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	return &cfg, nil
}

// configTypes maps supported file extensions to viper config types.
var configTypes = map[string]string{
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
}

func readFile(v *viper.Viper, path string) error {
	typ, ok := configTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return &ConfigError{Path: path, Err: fmt.Errorf("unsupported config file extension %q (expected .json, .yaml, .yml or .toml)", filepath.Ext(path))}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}

	doc, err := decode(typ, data)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if violations, err := Validate(doc); err != nil {
		return &ConfigError{Path: path, Err: err}
	} else if len(violations) > 0 {
		return &ConfigError{Path: path, Err: errors.New("schema validation failed"), Violations: violations}
	}

	v.SetConfigType(typ)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}
