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
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/walteh/rebrand/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrMissingName is wrapped by validation errors for an absent from or to name.
var ErrMissingName = errors.Base("name is required")

// 🧱 Default policy values
var (
	DefaultIgnoreDirs = []string{
		".git",
		".hg",
		".svn",
		"node_modules",
		".next",
		".expo",
		".turbo",
		".cache",
		"dist",
		"build",
		"coverage",
		"Pods",
		".supabase",
	}

	DefaultIgnoreFiles = []string{
		"**/package-lock.json",
		"**/yarn.lock",
		"**/pnpm-lock.yaml",
		"**/bun.lockb",
		"**/.DS_Store",
		"**/*.min.js",
		"**/*.map",
	}

	DefaultBinaryExtensions = []string{
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".icns",
		".pdf", ".zip", ".gz", ".tgz", ".tar", ".7z", ".jar", ".aar",
		".ttf", ".otf", ".woff", ".woff2", ".eot",
		".mp3", ".mp4", ".mov", ".wav", ".webm",
		".db", ".sqlite", ".keystore", ".jks", ".p12",
		".so", ".dylib", ".dll", ".exe", ".class", ".wasm",
	}

	// Supabase CLI defaults: API gateway and Postgres.
	DefaultSupabasePorts = []int{54321, 54322}
)

const (
	DefaultSupabaseHost    = "127.0.0.1"
	DefaultSupabaseTimeout = 500 * time.Millisecond
	DefaultRoot            = "."
)

// 🗄️ SupabaseConfig controls the local backend guard
type SupabaseConfig struct {
	Enabled   *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty" hcl:"enabled,optional"`
	Host      string `json:"host,omitempty" yaml:"host,omitempty" hcl:"host,optional"`
	Ports     []int  `json:"ports,omitempty" yaml:"ports,omitempty" hcl:"ports,optional"`
	TimeoutMS int    `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty" hcl:"timeout_ms,optional"`
}

// IsEnabled reports whether the guard should run. It defaults to true.
func (s *SupabaseConfig) IsEnabled() bool {
	return s == nil || s.Enabled == nil || *s.Enabled
}

// Timeout returns the timeout for each port dial.
func (s *SupabaseConfig) Timeout() time.Duration {
	if s == nil || s.TimeoutMS <= 0 {
		return DefaultSupabaseTimeout
	}
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// 📚 Config represents the complete configuration
type Config struct {
	From             string          `json:"from,omitempty" yaml:"from,omitempty" hcl:"from,optional"`
	To               string          `json:"to,omitempty" yaml:"to,omitempty" hcl:"to,optional"`
	Root             string          `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Mode             string          `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`
	Strict           bool            `json:"strict,omitempty" yaml:"strict,omitempty" hcl:"strict,optional"`
	IgnoreDirs       []string        `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty" hcl:"ignore_dirs,optional"`
	IgnoreFiles      []string        `json:"ignore_files,omitempty" yaml:"ignore_files,omitempty" hcl:"ignore_files,optional"`
	BinaryExtensions []string        `json:"binary_extensions,omitempty" yaml:"binary_extensions,omitempty" hcl:"binary_extensions,optional"`
	RespectGitignore *bool           `json:"respect_gitignore,omitempty" yaml:"respect_gitignore,omitempty" hcl:"respect_gitignore,optional"`
	Supabase         *SupabaseConfig `json:"supabase,omitempty" yaml:"supabase,omitempty" hcl:"supabase,block"`
}

// Default returns a Config with every default applied and no names set.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. Lists given in a file replace the
// defaults rather than extending them.
func (cfg *Config) ApplyDefaults() {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Mode == "" {
		cfg.Mode = string(text.ModeSinglePass)
	}
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = append([]string(nil), DefaultIgnoreDirs...)
	}
	if cfg.IgnoreFiles == nil {
		cfg.IgnoreFiles = append([]string(nil), DefaultIgnoreFiles...)
	}
	if cfg.BinaryExtensions == nil {
		cfg.BinaryExtensions = append([]string(nil), DefaultBinaryExtensions...)
	}
	if cfg.Supabase == nil {
		cfg.Supabase = &SupabaseConfig{}
	}
	if cfg.Supabase.Host == "" {
		cfg.Supabase.Host = DefaultSupabaseHost
	}
	if len(cfg.Supabase.Ports) == 0 {
		cfg.Supabase.Ports = append([]int(nil), DefaultSupabasePorts...)
	}
}

// GitignoreEnabled reports whether .gitignore rules should filter the walk.
func (cfg *Config) GitignoreEnabled() bool {
	return cfg.RespectGitignore == nil || *cfg.RespectGitignore
}

// 🚫 ValidationError describes one invalid configuration field
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// 🔍 Validate checks the configuration. requireTo is false for commands that
// only audit for the from name. Any returned error is a *ValidationError.
func (cfg *Config) Validate(requireTo bool) error {
	if strings.TrimSpace(cfg.From) == "" {
		return &ValidationError{Field: "from", Reason: "is required", Err: ErrMissingName}
	}
	if requireTo && strings.TrimSpace(cfg.To) == "" {
		return &ValidationError{Field: "to", Reason: "is required", Err: ErrMissingName}
	}
	if _, err := text.ParseMode(cfg.Mode); err != nil {
		return &ValidationError{Field: "mode", Reason: err.Error(), Err: err}
	}
	for _, ext := range cfg.BinaryExtensions {
		if !strings.HasPrefix(ext, ".") {
			return &ValidationError{Field: "binary_extensions", Reason: fmt.Sprintf("%q must start with a dot", ext)}
		}
	}
	if cfg.Supabase != nil {
		for _, p := range cfg.Supabase.Ports {
			if p <= 0 || p > 65535 {
				return &ValidationError{Field: "supabase.ports", Reason: fmt.Sprintf("%d is not a valid port", p)}
			}
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)
	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%q -> %q in %s (%s)", cfg.From, cfg.To, cfg.Root, cfg.Mode)
}
