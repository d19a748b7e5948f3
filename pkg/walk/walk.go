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

// Package walk enumerates the files a rename should visit.
package walk

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"gitlab.com/tozd/go/errors"
)

// 📋 Policy decides which paths are candidates
type Policy struct {
	// IgnoreDirs are directory names (".git") or slash separated globs
	// relative to the root ("ios/Pods", "**/generated").
	IgnoreDirs []string
	// IgnoreFiles are doublestar globs matched against the slash separated
	// path relative to the root.
	IgnoreFiles []string
	// BinaryExtensions are lowercase extensions, dot included.
	BinaryExtensions []string
	// RespectGitignore applies the root .gitignore when present.
	RespectGitignore bool
}

// 📄 Entry is one candidate file
type Entry struct {
	Path    string // slash separated, relative to root
	AbsPath string
	Mode    fs.FileMode
}

// Walker enumerates candidate files beneath a root directory.
type Walker struct {
	policy    Policy
	binaryExt map[string]struct{}
	dirNames  map[string]struct{}
	dirGlobs  []string
}

// 🏭 New creates a Walker for policy
func New(policy Policy) *Walker {
	w := &Walker{
		policy:    policy,
		binaryExt: make(map[string]struct{}, len(policy.BinaryExtensions)),
		dirNames:  map[string]struct{}{},
	}
	for _, ext := range policy.BinaryExtensions {
		w.binaryExt[strings.ToLower(ext)] = struct{}{}
	}
	for _, d := range policy.IgnoreDirs {
		d = strings.Trim(filepath.ToSlash(d), "/")
		if d == "" {
			continue
		}
		if strings.ContainsAny(d, "/*?[{") {
			w.dirGlobs = append(w.dirGlobs, d)
		} else {
			w.dirNames[d] = struct{}{}
		}
	}
	return w
}

// HasBinaryExtension reports whether path ends in a configured binary extension.
func (w *Walker) HasBinaryExtension(path string) bool {
	_, ok := w.binaryExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// 🚶 Files returns every candidate file under root, sorted by path.
//
// Ignored directories are pruned, symlinks are skipped, and files with a
// binary extension or matching an ignore glob are left out. Any error from
// the file system aborts the walk.
func (w *Walker) Files(ctx context.Context, root string) ([]Entry, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("opening root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root %s is not a directory", root)
	}

	var gi *ignore.GitIgnore
	if w.policy.RespectGitignore {
		gi, err = loadGitignore(root)
		if err != nil {
			return nil, err
		}
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.ignoreDir(d.Name(), rel) || (gi != nil && gi.MatchesPath(rel+"/")) {
				logger.Debug().Str("dir", rel).Msg("skipping ignored directory")
				return filepath.SkipDir
			}
			return nil
		}

		// symlinks, sockets and devices
		if !d.Type().IsRegular() {
			return nil
		}
		if w.HasBinaryExtension(rel) {
			logger.Debug().Str("file", rel).Msg("skipping binary extension")
			return nil
		}
		if w.ignoreFile(rel) || (gi != nil && gi.MatchesPath(rel)) {
			logger.Debug().Str("file", rel).Msg("skipping ignored file")
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return errors.Errorf("stat %s: %w", rel, err)
		}

		entries = append(entries, Entry{Path: rel, AbsPath: path, Mode: fi.Mode().Perm()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

func (w *Walker) ignoreDir(name, rel string) bool {
	if _, ok := w.dirNames[name]; ok {
		return true
	}
	if _, ok := w.dirNames[rel]; ok {
		return true
	}
	for _, pattern := range w.dirGlobs {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *Walker) ignoreFile(rel string) bool {
	for _, pattern := range w.policy.IgnoreFiles {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
		// allow plain basenames like "yarn.lock"
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, filepath.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

// loadGitignore returns nil when the root has no .gitignore.
func loadGitignore(root string) (*ignore.GitIgnore, error) {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading .gitignore: %w", err)
	}
	return gi, nil
}
