// Package config loads bridge settings from a yaml file, BRIDGE_* environment
// variables and built-in defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/bridge-runtime/bridge"
	"github.com/wippyai/bridge-runtime/errors"
)

// EnvPrefix prefixes environment overrides, e.g. BRIDGE_VARIANT=plain.
const EnvPrefix = "BRIDGE"

const (
	KeyVariant          = "variant"
	KeyLogLevel         = "log_level"
	KeyHostModule       = "host_module"
	KeyMemoryLimitPages = "memory_limit_pages"
	KeyInterpreter      = "interpreter"
)

// Config holds settings shared by the CLI and the wasm engine.
type Config struct {
	Variant          string `mapstructure:"variant"`
	LogLevel         string `mapstructure:"log_level"`
	HostModule       string `mapstructure:"host_module"`
	MemoryLimitPages uint32 `mapstructure:"memory_limit_pages"`
	Interpreter      bool   `mapstructure:"interpreter"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Variant:    bridge.Default.String(),
		LogLevel:   "info",
		HostModule: "env",
	}
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyVariant, d.Variant)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyHostModule, d.HostModule)
	v.SetDefault(KeyMemoryLimitPages, d.MemoryLimitPages)
	v.SetDefault(KeyInterpreter, d.Interpreter)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (if non-empty) into v and decodes the result.
// Pass nil to start from New().
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "read "+path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := c.BridgeVariant(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.HostModule == "" {
		return errors.InvalidInput(errors.PhaseConfig, "host_module cannot be empty")
	}
	return nil
}

// BridgeVariant parses the configured variant.
func (c *Config) BridgeVariant() (bridge.Variant, error) {
	return bridge.ParseVariant(c.Variant)
}

// Level parses the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.New(errors.PhaseConfig, errors.KindInvalidEnum).
			Value(c.LogLevel).
			Cause(err).
			Detail("invalid log_level").
			Build()
	}
	return lvl, nil
}
