package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/bridge-runtime/bridge"
	"github.com/wippyai/bridge-runtime/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	v, err := cfg.BridgeVariant()
	require.NoError(t, err)
	assert.Equal(t, bridge.VariantIndexed, v)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
variant: plain
log_level: debug
host_module: bridge
memory_limit_pages: 16
interpreter: true
`)
	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Variant:          "plain",
		LogLevel:         "debug",
		HostModule:       "bridge",
		MemoryLimitPages: 16,
		Interpreter:      true,
	}, cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BRIDGE_VARIANT", "plain")
	t.Setenv("BRIDGE_LOG_LEVEL", "warn")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Variant)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "env", cfg.HostModule)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "variant: plain\n")
	t.Setenv("BRIDGE_VARIANT", "indexed")

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "indexed", cfg.Variant)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidData})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind errors.Kind
	}{
		{"bad variant", "variant: shouting\n", errors.KindInvalidEnum},
		{"bad level", "log_level: chatty\n", errors.KindInvalidEnum},
		{"empty host module", "host_module: \"\"\n", errors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(nil, writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: tt.kind})
		})
	}
}

func TestNew_FlagOverride(t *testing.T) {
	v := New()
	v.Set(KeyVariant, "plain")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Variant)
}
