// Package config loads nanoboard settings from flags, NANOBOARD_* environment
// variables and an optional nanoboard.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. NANOBOARD_STORAGE_BACKEND.
const EnvPrefix = "NANOBOARD"

// ConfigEnv points at an explicit config file and disables discovery.
const ConfigEnv = EnvPrefix + "_CONFIG"

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted storage.backend values.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite}

// Config is the resolved configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage" json:"storage"`
	User    UserConfig    `mapstructure:"user" yaml:"user" json:"user"`
	Seed    bool          `mapstructure:"seed" yaml:"seed" json:"seed"`
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http" json:"http"`
}

// StorageConfig selects where the board tree is persisted.
type StorageConfig struct {
	Backend  string        `mapstructure:"backend" yaml:"backend" json:"backend"`
	Path     string        `mapstructure:"path" yaml:"path" json:"path"`
	Slot     string        `mapstructure:"slot" yaml:"slot" json:"slot"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// UserConfig is the actor stamped on activities and comments.
type UserConfig struct {
	ID   string `mapstructure:"id" yaml:"id" json:"id"`
	Name string `mapstructure:"name" yaml:"name" json:"name"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr    string   `mapstructure:"addr" yaml:"addr" json:"addr"`
	Origins []string `mapstructure:"origins" yaml:"origins" json:"origins"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"backend":   "storage.backend",
	"data-dir":  "storage.path",
	"slot":      "storage.slot",
	"debounce":  "storage.debounce",
	"user-id":   "user.id",
	"user-name": "user.name",
	"seed":      "seed",
	"log-level": "log.level",
	"addr":      "http.addr",
	"origins":   "http.origins",
}

// DefaultDataDir returns $HOME/.nanoboard, or .nanoboard when there is no home.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nanoboard"
	}
	return filepath.Join(home, ".nanoboard")
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", DefaultDataDir())
	v.SetDefault("storage.slot", "board-storage")
	v.SetDefault("storage.debounce", time.Duration(0))
	v.SetDefault("user.id", "john")
	v.SetDefault("user.name", "John")
	v.SetDefault("seed", true)
	v.SetDefault("log.level", "warn")
	v.SetDefault("http.addr", ":3001")
	v.SetDefault("http.origins", []string{"*"})
}

// New returns a viper instance with defaults, environment binding and
// config file discovery set up. flags may be nil; known flags that are
// present are bound to their keys.
func New(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile := os.Getenv(ConfigEnv); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nanoboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.nanoboard")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(Backends, c.Storage.Backend) {
		errs = append(errs, fmt.Errorf("storage.backend %q is not one of %s", c.Storage.Backend, strings.Join(Backends, ", ")))
	}
	if c.Storage.Backend != BackendMemory && c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if c.Storage.Slot == "" {
		errs = append(errs, errors.New("storage.slot is required"))
	}
	if c.Storage.Debounce < 0 {
		errs = append(errs, errors.New("storage.debounce must not be negative"))
	}
	if strings.TrimSpace(c.User.Name) == "" {
		errs = append(errs, errors.New("user.name is required"))
	}
	return errors.Join(errs...)
}
