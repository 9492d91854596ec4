// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the configuration directory.
	AppName = "pkgflags"
	// FileName is the config file name without extension.
	FileName = "config"
)

// extensions are tried in this order when no file is given.
var extensions = []string{".yaml", ".yml", ".toml"}

// Config holds pkgflags settings that are not per-invocation.
type Config struct {
	// PackagePath is the directory holding pkg-config.pc.
	PackagePath    string `mapstructure:"package_path" yaml:"package_path" toml:"package_path"`
	DefinePrefix   bool   `mapstructure:"define_prefix" yaml:"define_prefix" toml:"define_prefix"`
	PrefixVariable string `mapstructure:"prefix_variable" yaml:"prefix_variable" toml:"prefix_variable"`
	ShortErrors    bool   `mapstructure:"short_errors" yaml:"short_errors" toml:"short_errors"`
	Debug          bool   `mapstructure:"debug" yaml:"debug" toml:"debug"`

	// Variables seed the configuration package: pc_path, sysrootdir,
	// system_include_path and so on. Variables the package defines itself
	// and the environment both take precedence.
	Variables map[string]string `mapstructure:"variables" yaml:"variables" toml:"variables"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DefinePrefix:   runtime.GOOS == "windows",
		PrefixVariable: "prefix",
		Variables:      make(map[string]string),
	}
}

// Dir returns $XDG_CONFIG_HOME/pkgflags, defaulting to ~/.config/pkgflags.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// Load layers defaults, the config file and the environment. An explicit
// path must exist; without one the config directory is searched and a
// missing file is not an error. The file actually used is returned.
func Load(path string) (*Config, string, error) {
	v := viper.New()
	v.AllowEmptyEnv(true)

	defaults := DefaultConfig()
	v.SetDefault("package_path", defaults.PackagePath)
	v.SetDefault("define_prefix", defaults.DefinePrefix)
	v.SetDefault("prefix_variable", defaults.PrefixVariable)
	v.SetDefault("short_errors", defaults.ShortErrors)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("variables", defaults.Variables)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("config file not found: %w", err)
		}
	} else {
		path = find()
	}

	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, "", err
		}
	}

	if err := v.BindEnv("package_path", "PKG_CONFIG_PACKAGE_PATH"); err != nil {
		return nil, "", fmt.Errorf("binding environment: %w", err)
	}
	// Presence alone turns tracing on, whatever the value.
	if err := v.BindEnv("debug_spew", "PKG_CONFIG_DEBUG_SPEW"); err != nil {
		return nil, "", fmt.Errorf("binding environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("parsing config: %w", err)
	}
	if v.IsSet("debug_spew") {
		cfg.Debug = true
	}
	if cfg.Variables == nil {
		cfg.Variables = make(map[string]string)
	}
	return &cfg, path, nil
}

func find() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	for _, ext := range extensions {
		candidate := filepath.Join(dir, FileName+ext)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// mergeFile decodes a YAML or TOML file and merges it over the defaults.
func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	values := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &values); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("merging config: %w", err)
	}
	return nil
}

// Save writes cfg as YAML, creating the directory as needed.
func Save(cfg *Config, path string) error {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, FileName+".yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
