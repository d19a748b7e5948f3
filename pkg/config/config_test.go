// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config file")
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_config",
			file: ".rebrand.yaml",
			config: `
from: Beaker Stack
to: Acme App
strict: true
mode: sequential
ignore_dirs: [node_modules]
ignore_files: ["**/*.snap"]
respect_gitignore: false
supabase:
  enabled: false
  ports: [6000]
  timeout_ms: 50
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Beaker Stack", cfg.From, "from should match")
				assert.Equal(t, "Acme App", cfg.To, "to should match")
				assert.True(t, cfg.Strict, "strict should be true")
				assert.Equal(t, "sequential", cfg.Mode, "mode should match")
				assert.Equal(t, []string{"node_modules"}, cfg.IgnoreDirs, "ignore dirs replace defaults")
				assert.Equal(t, []string{"**/*.snap"}, cfg.IgnoreFiles)
				assert.Equal(t, DefaultBinaryExtensions, cfg.BinaryExtensions, "binary extensions default")
				assert.False(t, cfg.GitignoreEnabled())
				assert.False(t, cfg.Supabase.IsEnabled())
				assert.Equal(t, []int{6000}, cfg.Supabase.Ports)
				assert.Equal(t, DefaultSupabaseHost, cfg.Supabase.Host)
				assert.Equal(t, 50*time.Millisecond, cfg.Supabase.Timeout())
			},
		},
		{
			name:   "minimal_yaml_gets_defaults",
			file:   ".rebrand.yml",
			config: "from: Beaker\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Beaker", cfg.From)
				assert.Equal(t, DefaultRoot, cfg.Root)
				assert.Equal(t, "single-pass", cfg.Mode)
				assert.Equal(t, DefaultIgnoreDirs, cfg.IgnoreDirs)
				assert.True(t, cfg.GitignoreEnabled())
				assert.True(t, cfg.Supabase.IsEnabled())
				assert.Equal(t, DefaultSupabasePorts, cfg.Supabase.Ports)
				assert.Equal(t, DefaultSupabaseTimeout, cfg.Supabase.Timeout())
			},
		},
		{
			name:   "empty_yaml",
			file:   ".rebrand.yaml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.From)
				assert.Equal(t, DefaultRoot, cfg.Root)
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        ".rebrand.yaml",
			config:      "from: a\nprovider: github\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name: "json_config",
			file: ".rebrand.json",
			config: `{
				"from": "Beaker Stack",
				"to": "Acme App",
				"binary_extensions": [".bin"],
				"supabase": {"host": "db.local"}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Acme App", cfg.To)
				assert.Equal(t, []string{".bin"}, cfg.BinaryExtensions)
				assert.Equal(t, "db.local", cfg.Supabase.Host)
				assert.Equal(t, DefaultSupabasePorts, cfg.Supabase.Ports)
			},
		},
		{
			name:        "json_unknown_field",
			file:        ".rebrand.json",
			config:      `{"from": "a", "destination": "/tmp"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name: "hcl_config",
			file: ".rebrand.hcl",
			config: `
from   = "Beaker Stack"
to     = "Acme App"
strict = true
ignore_dirs = ["vendor"]

supabase {
  enabled = false
  ports   = [1234, 5678]
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Beaker Stack", cfg.From)
				assert.Equal(t, "Acme App", cfg.To)
				assert.True(t, cfg.Strict)
				assert.Equal(t, []string{"vendor"}, cfg.IgnoreDirs)
				assert.False(t, cfg.Supabase.IsEnabled())
				assert.Equal(t, []int{1234, 5678}, cfg.Supabase.Ports)
			},
		},
		{
			name:        "hcl_syntax_error",
			file:        ".rebrand.hcl",
			config:      `from = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			file:        ".rebrand.toml",
			config:      `from = "x"`,
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.config)

			cfg, err := Load(testContext(t), path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadHCLEnvironment(t *testing.T) {
	t.Setenv("REBRAND_TEST_TO", "Acme App")
	path := writeConfig(t, ".rebrand.hcl", `
from = "Beaker Stack"
to   = env.REBRAND_TEST_TO
`)

	cfg, err := Load(testContext(t), path)
	require.NoError(t, err)
	assert.Equal(t, "Acme App", cfg.To)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(testContext(t), filepath.Join(t.TempDir(), ".rebrand.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDiscover(t *testing.T) {
	t.Run("explicit_path", func(t *testing.T) {
		path := writeConfig(t, "custom.yaml", "from: Explicit\n")
		cfg, err := Discover(testContext(t), t.TempDir(), path)
		require.NoError(t, err)
		assert.Equal(t, "Explicit", cfg.From)
	})

	t.Run("default_file_in_dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".rebrand.hcl"), []byte(`from = "Found"`), 0644))

		cfg, err := Discover(testContext(t), dir, "")
		require.NoError(t, err)
		assert.Equal(t, "Found", cfg.From)
	})

	t.Run("no_file_uses_defaults", func(t *testing.T) {
		cfg, err := Discover(testContext(t), t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		requireTo bool
		wantField string
		wantName  bool
	}{
		{
			name:      "valid",
			mutate:    func(cfg *Config) { cfg.From, cfg.To = "a", "b" },
			requireTo: true,
		},
		{
			name:      "missing_from",
			mutate:    func(cfg *Config) { cfg.To = "b" },
			requireTo: true,
			wantField: "from",
			wantName:  true,
		},
		{
			name:      "missing_to",
			mutate:    func(cfg *Config) { cfg.From = "a" },
			requireTo: true,
			wantField: "to",
			wantName:  true,
		},
		{
			name:   "to_optional_for_audit",
			mutate: func(cfg *Config) { cfg.From = "a" },
		},
		{
			name:      "bad_mode",
			mutate:    func(cfg *Config) { cfg.From, cfg.Mode = "a", "regex" },
			wantField: "mode",
		},
		{
			name:      "bad_extension",
			mutate:    func(cfg *Config) { cfg.From, cfg.BinaryExtensions = "a", []string{"png"} },
			wantField: "binary_extensions",
		},
		{
			name:      "bad_port",
			mutate:    func(cfg *Config) { cfg.From, cfg.Supabase.Ports = "a", []int{70000} },
			wantField: "supabase.ports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate(tt.requireTo)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error should be a ValidationError")
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantName, errors.Is(err, ErrMissingName))
		})
	}
}

func TestValidateCleansRoot(t *testing.T) {
	cfg := Default()
	cfg.From = "a"
	cfg.Root = "./some//dir/"
	require.NoError(t, cfg.Validate(false))
	assert.Equal(t, filepath.Clean("some/dir"), cfg.Root)
}
