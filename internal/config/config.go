package config

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable, e.g. LSBSTEG_LOG_LEVEL.
const Prefix = "LSBSTEG"

type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// CacheDir holds images downloaded from URLs. Empty means a directory
	// under os.TempDir().
	CacheDir string `envconfig:"CACHE_DIR"`
	// Workers reading rows on reveal. 0 means runtime.NumCPU().
	Workers int `envconfig:"WORKERS" default:"0"`
	// ECC turns on Golay error correction unless a flag says otherwise.
	ECC bool `envconfig:"ECC" default:"false"`
	// PNGCompression is one of default, none, fast, best.
	PNGCompression string `envconfig:"PNG_COMPRESSION" default:"best"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return cfg, err
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(os.TempDir(), "lsbsteg_http_cache")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Compression(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s_LOG_LEVEL: %w", Prefix, err)
	}
	return lvl, nil
}

func (c Config) Compression() (png.CompressionLevel, error) {
	switch c.PNGCompression {
	case "default", "":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "fast":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return png.DefaultCompression, fmt.Errorf("%s_PNG_COMPRESSION: unknown level %q", Prefix, c.PNGCompression)
}
