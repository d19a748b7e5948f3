package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFiles are tried in order when no config path is given.
var DefaultFiles = []string{".rebrand.yaml", ".rebrand.yml", ".rebrand.hcl", ".rebrand.json"}

// 🎯 Load loads the configuration from a file and applies defaults. The
// result is not validated; flags may still fill in required names.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(filepath.Base(path))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// Discover loads path when it is set. Otherwise it loads the first of
// DefaultFiles found in dir, or returns Default() when none exist.
func Discover(ctx context.Context, dir, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		} else if !os.IsNotExist(err) {
			return nil, errors.Errorf("checking %s: %w", candidate, err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}
