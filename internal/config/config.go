// Package config resolves the command line settings from flags, HOPCROFT_*
// environment variables and an optional config file, in that order of precedence.
package config

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "HOPCROFT"

// Keys double as flag names.
const (
	KeyLogLevel    = "log-level"
	KeyDevelopment = "dev"
	KeyFormat      = "format"
	KeyCanonical   = "canonical"
)

// Output formats for the minimized automaton.
const (
	FormatText = "text"
	FormatDot  = "dot"
	FormatYAML = "yaml"
)

var Formats = []string{FormatText, FormatDot, FormatYAML}

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogLevel    string
	Development bool
	// Format selects how the quotient automaton is printed.
	Format string
	// Canonical sorts states by name before refinement.
	Canonical bool
}

func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Format:   FormatText,
	}
}

// Load merges flags, environment and the config file at path (skipped when empty)
// over the defaults. Only flags that were set on the command line override the
// environment and the file.
func Load(flags *pflag.FlagSet, path string) (*Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyDevelopment, defaults.Development)
	v.SetDefault(KeyFormat, defaults.Format)
	v.SetDefault(KeyCanonical, defaults.Canonical)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyLogLevel, KeyDevelopment, KeyFormat, KeyCanonical} {
			if f := flags.Lookup(key); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", key)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	cfg := &Config{
		LogLevel:    v.GetString(KeyLogLevel),
		Development: v.GetBool(KeyDevelopment),
		Format:      strings.ToLower(v.GetString(KeyFormat)),
		Canonical:   v.GetBool(KeyCanonical),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return errors.Wrapf(ErrInvalid, "format %q, want one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if c.LogLevel == "" {
		return errors.Wrap(ErrInvalid, "empty log level")
	}
	return nil
}
