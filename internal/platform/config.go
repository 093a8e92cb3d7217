package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aretw0/notes/pkg/format"
)

// EnvPrefix prefixes every environment override (NOTES_DIR, NOTES_DEFAULT_LIMIT...).
const EnvPrefix = "NOTES"

// ErrConfig marks configuration failures.
var ErrConfig = errors.New("config error")

// Config is the user configuration of the notes CLI.
type Config struct {
	Dir          string `mapstructure:"dir"`
	DefaultLimit int    `mapstructure:"default_limit"`
	ExportFormat string `mapstructure:"export_format"`
	Verbose      bool   `mapstructure:"verbose"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/notes/config.yaml, falling back
// to ~/.config/notes/config.yaml.
func DefaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "notes", "config.yaml")
}

// DefaultDir is the storage directory used when nothing else is configured.
func DefaultDir() string {
	dir, err := ExpandHome("~/" + StoreDirName)
	if err != nil {
		return StoreDirName
	}
	return dir
}

// LoadConfig reads the configuration. Precedence, lowest first: defaults,
// config file, .env file, NOTES_* environment variables.
// An empty path means DefaultConfigPath, which may be absent; an explicit
// path must exist.
func LoadConfig(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("dir", "")
	v.SetDefault("default_limit", 0)
	v.SetDefault("export_format", string(format.Markdown))
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultLimit < 0 {
		return fmt.Errorf("%w: default_limit must be non-negative, got %d", ErrConfig, c.DefaultLimit)
	}
	if _, err := format.Parse(c.ExportFormat); err != nil {
		return fmt.Errorf("%w: export_format: %v", ErrConfig, err)
	}
	dir, err := ExpandHome(c.Dir)
	if err != nil {
		return fmt.Errorf("%w: dir: %v", ErrConfig, err)
	}
	c.Dir = dir
	return nil
}

// ResolveDir picks the storage directory: an explicit flag value, then the
// configured dir, then a .notes store above the working directory, then
// ~/.notes.
func (c *Config) ResolveDir(flag string) (string, error) {
	if flag != "" {
		dir, err := ExpandHome(flag)
		if err != nil {
			return "", fmt.Errorf("%w: dir: %v", ErrConfig, err)
		}
		return dir, nil
	}
	if c.Dir != "" {
		return c.Dir, nil
	}
	if wd, err := os.Getwd(); err == nil {
		if store, err := FindStore(wd); err == nil {
			return store, nil
		}
	}
	return DefaultDir(), nil
}
