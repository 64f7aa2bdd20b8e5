package config

import (
	"image/png"
	"log/slog"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "CACHE_DIR", "WORKERS", "ECC", "PNG_COMPRESSION"} {
		// register a restore, then unset
		t.Setenv(Prefix+"_"+k, "")
		require.NoError(t, os.Unsetenv(Prefix+"_"+k))
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.NotEmpty(t, cfg.CacheDir)
	assert.False(t, cfg.ECC)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LSBSTEG_LOG_LEVEL", "debug")
	t.Setenv("LSBSTEG_CACHE_DIR", "/tmp/x")
	t.Setenv("LSBSTEG_WORKERS", "3")
	t.Setenv("LSBSTEG_ECC", "true")
	t.Setenv("LSBSTEG_PNG_COMPRESSION", "fast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", cfg.CacheDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.ECC)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	c, err := cfg.Compression()
	require.NoError(t, err)
	assert.Equal(t, png.BestSpeed, c)
}

func TestLoadInvalid(t *testing.T) {
	test := []struct {
		key, value string
	}{
		{"LSBSTEG_LOG_LEVEL", "loud"},
		{"LSBSTEG_PNG_COMPRESSION", "max"},
		{"LSBSTEG_WORKERS", "many"},
	}
	for _, tt := range test {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
