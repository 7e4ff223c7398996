// Package config is for app wide settings unmarshalled from Viper
// (see: /cmd), following the split the rest of this codebase's history
// uses between CLI flag parsing and the settings a command actually runs
// with.
package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DefaultMinSearchLength is the k used to build a GenomeMatcher when
// neither a flag nor a config file overrides it.
const DefaultMinSearchLength = 10

// SearchConfig holds the settings for `genomicsd search`.
type SearchConfig struct {
	// MinSearchLength is k, the matcher's fixed seed width.
	MinSearchLength int `mapstructure:"min-search-length"`

	// Exact disables the one-mismatch tolerance.
	Exact bool `mapstructure:"exact"`
}

// RelatedConfig holds the settings for `genomicsd related`.
type RelatedConfig struct {
	// FragmentLength is the window size query genomes are chopped into.
	FragmentLength int `mapstructure:"fragment-length"`

	// Threshold is the strict lower bound on percent match to report.
	Threshold float64 `mapstructure:"threshold"`

	// Exact disables the one-mismatch tolerance.
	Exact bool `mapstructure:"exact"`
}

// LogConfig controls logrus's verbosity.
type LogConfig struct {
	// Level is one of logrus's level names: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
}

// Config is the root-level settings struct, a mix of settings available
// in a config file and those available from the command line.
type Config struct {
	Search  SearchConfig
	Related RelatedConfig
	Log     LogConfig
}

// New returns a Config populated from whatever Viper holds (the flags
// cmd/search.go and cmd/related.go bind with viper.BindPFlag; no config
// file or environment variables are read), with defaults filled in for
// anything left unset.
func New() *Config {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		logrus.Fatalf("unable to decode config: %v", err)
	}

	if c.Search.MinSearchLength <= 0 {
		c.Search.MinSearchLength = DefaultMinSearchLength
	}
	if c.Related.FragmentLength <= 0 {
		c.Related.FragmentLength = c.Search.MinSearchLength
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	return &c
}
