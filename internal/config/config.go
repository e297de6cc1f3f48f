// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Library struct {
		// Path is the folder offered when choosing a folder, and the
		// folder the CLI scans when none is given.
		Path        string `mapstructure:"path"`
		SeedSamples bool   `mapstructure:"seed_samples"`
	} `mapstructure:"library"`
	Scan struct {
		FollowSymlinks bool `mapstructure:"follow_symlinks"`
	} `mapstructure:"scan"`
	Log struct {
		File string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"dir":             "library.path",
	"follow-symlinks": "scan.follow_symlinks",
	"samples":         "library.seed_samples",
	"log-file":        "log.file",
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command line flags taking precedence over the
// file and the environment. Only flags listed in flagKeys are bound.
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")    // or "yaml"
	v.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// e.g., STORYSPHERE_LIBRARY_PATH will override the `library.path` key.
	v.SetEnvPrefix("STORYSPHERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("library.path", ".")
	v.SetDefault("library.seed_samples", false)
	v.SetDefault("scan.follow_symlinks", true)
	v.SetDefault("log.file", "")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// RegisterFlags adds the flags understood by LoadWithFlags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("dir", "", "library folder to scan")
	fs.Bool("follow-symlinks", true, "descend into symlinked directories")
	fs.Bool("samples", false, "seed the library with sample books")
	fs.String("log-file", "", "write logs to this file")
}
