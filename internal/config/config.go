package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/openmined/libsync/internal/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyServerURL = "url"
	KeyAPIKey    = "key"
	KeyTimeout   = "timeout"
	KeyVerbose   = "verbose"

	EnvPrefix = "LIBSYNC"
)

var (
	DefaultConfigDir  = filepath.Join(baseDir(os.UserHomeDir()), ".config", "libsync")
	DefaultLockDir    = filepath.Join(DefaultConfigDir, "locks")
	DefaultServerURL  = "http://127.0.0.1:8080/galaxy/"
	DefaultTimeout    = 5 * time.Minute
	DefaultDotEnvFile = ".env"

	ErrNoAPIKey = errors.New("config: api key missing, set --key or LIBSYNC_KEY")
)

// baseDir falls back to the temp dir when there is no usable home, so the
// defaults never end up relative to the working directory.
func baseDir(home string, err error) string {
	if err != nil || !filepath.IsAbs(home) {
		return os.TempDir()
	}
	return home
}

// Config is built once at startup and handed to everything that needs it.
// Nothing changes it after Load returns.
type Config struct {
	ServerURL string
	APIKey    string
	Timeout   time.Duration
	Verbose   bool
	// Path is the config file that was read, empty if none
	Path string
}

// Validate normalizes the server url and checks the required fields.
func (c *Config) Validate() error {
	u, err := utils.NormalizeServerURL(c.ServerURL)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.ServerURL = u

	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		return ErrNoAPIKey
	}

	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config file, skipping the default search
	ConfigFile string
	// DotEnvFile is loaded into the environment when it exists
	DotEnvFile string
	// SearchPaths are searched for config.{yaml,json,toml} when ConfigFile is empty
	SearchPaths []string
}

func DefaultOptions() Options {
	return Options{
		DotEnvFile:  DefaultDotEnvFile,
		SearchPaths: []string{DefaultConfigDir},
	}
}

// Load resolves the config from, highest first: changed flags, environment,
// the .env file, the config file, then flag defaults and built-in defaults.
func Load(v *viper.Viper, flags *pflag.FlagSet, opts Options) (*Config, error) {
	if opts.DotEnvFile != "" && utils.FileExists(opts.DotEnvFile) {
		// godotenv never overrides variables already set
		if err := godotenv.Load(opts.DotEnvFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", opts.DotEnvFile, err)
		}
	}

	v.SetDefault(KeyServerURL, DefaultServerURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
		v.SetConfigName("config")
	}

	if opts.ConfigFile != "" || len(opts.SearchPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			enoent := errors.Is(err, os.ErrNotExist)
			var notFound viper.ConfigFileNotFoundError
			if !enoent && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config read '%s': %w", v.ConfigFileUsed(), err)
			}
		}
	}

	if flags != nil {
		for _, key := range []string{KeyServerURL, KeyAPIKey, KeyTimeout, KeyVerbose} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// GALAXY_KEY is what the old scripts read
	if err := v.BindEnv(KeyAPIKey, EnvPrefix+"_KEY", "GALAXY_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(KeyServerURL, EnvPrefix+"_URL", "GALAXY_URL"); err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerURL: v.GetString(KeyServerURL),
		APIKey:    v.GetString(KeyAPIKey),
		Timeout:   v.GetDuration(KeyTimeout),
		Verbose:   v.GetBool(KeyVerbose),
		Path:      v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
