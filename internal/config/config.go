// Package config loads picker settings from defaults, a YAML file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. RPICK_LOG_LEVEL.
	EnvPrefix = "RPICK_"
	// ConfigFileEnv points at an alternative config file.
	ConfigFileEnv = EnvPrefix + "CONFIG_FILE"
)

type Config struct {
	Mode          string        `koanf:"mode" default:"file" validate:"oneof=file directory"`
	Pattern       string        `koanf:"pattern"`
	StartDir      string        `koanf:"start_dir"`
	ShowHidden    bool          `koanf:"show_hidden"`
	Watch         bool          `koanf:"watch" default:"true"`
	WatchDebounce time.Duration `koanf:"watch_debounce" default:"250ms" validate:"gte=0"`
	DoubleClick   time.Duration `koanf:"double_click" default:"300ms" validate:"gt=0"`
	LogFile       string        `koanf:"log_file"`
	LogLevel      string        `koanf:"log_level" default:"info" validate:"oneof=trace debug info warn error disabled"`
}

// Default returns a config populated only with defaults.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// DefaultPath is $XDG_CONFIG_HOME/rpick/config.yaml, falling back to
// ~/.config/rpick/config.yaml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rpick", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rpick", "config.yaml")
}

// Load reads configuration. path selects the file; when empty, ConfigFileEnv
// and then DefaultPath are used. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path == "" {
		path = DefaultPath()
	}

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalizeMode()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps RPICK_LOG_LEVEL to log_level.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// normalizeMode maps the aliases the command line accepts ("dir", "d",
// "folder", "f") to their canonical name. Unknown values are left for
// Validate to report.
func (c *Config) normalizeMode() {
	if mode, err := statepkg.ParseBrowserMode(c.Mode); err == nil {
		c.Mode = mode.String()
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
