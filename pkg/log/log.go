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

package log

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 45 // Base width for filename
	statusWidth  = 12 // Width for status text
	residualMark = "!"
)

// File statuses shown in the console.
const (
	StatusUpdated   = "updated"
	StatusWouldEdit = "would edit"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
)

// 🎯 FileOperation represents one processed file for logging
type FileOperation struct {
	Path         string // File path relative to the root
	Status       string // Operation status
	Reason       string // Why a file was skipped
	IsModified   bool   // Whether the content changed (or would change)
	IsSkipped    bool   // Whether the file was left untouched
	Replacements int    // Number of replacements made
	Residual     int    // Legacy patterns still present afterwards
}

// 📊 Summary is the end of run report
type Summary struct {
	Root         string
	FilesScanned int
	FilesChanged int
	FilesSkipped int
	Replacements int
	DryRun       bool
	Residual     map[string][]string // path -> patterns still present
}

// 🎯 Logger writes human readable progress to a console and mirrors every
// line to a structured zerolog logger
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	detail := ""
	switch {
	case op.IsSkipped && op.Reason != "":
		detail = op.Reason
	case op.Replacements > 0:
		detail = fmt.Sprintf("%d replacements", op.Replacements)
	}
	if op.Residual > 0 {
		detail += color.New(color.FgRed).Sprintf(" %s %d residual", residualMark, op.Residual)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		fmt.Sprintf("%-*s", statusWidth, op.Status),
		detail)
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("status", op.Status).
		Str("reason", op.Reason).
		Bool("is_modified", op.IsModified).
		Bool("is_skipped", op.IsSkipped).
		Int("replacements", op.Replacements).
		Int("residual", op.Residual).
		Msg("file operation")
}

// 📝 Diff prints a change preview for one file
func (l *Logger) Diff(path, diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s\n%s\n", color.New(color.Bold).Sprintf("--- %s", path), diff)
	l.zlog.Debug().Str("file", path).Int("diff_bytes", len(diff)).Msg("previewed change")
}

// 📝 Summary prints the end of run report
func (l *Logger) Summary(s Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	verb := "changed"
	if s.DryRun {
		verb = "would change"
	}

	fmt.Fprintln(l.console)
	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgMagenta).Sprint("◆"), color.New(color.Bold).Sprint(s.Root))
	fmt.Fprintf(l.console, "  files scanned:  %d\n", s.FilesScanned)
	fmt.Fprintf(l.console, "  files %s: %d\n", verb, s.FilesChanged)
	fmt.Fprintf(l.console, "  files skipped:  %d\n", s.FilesSkipped)
	fmt.Fprintf(l.console, "  replacements:   %d\n", s.Replacements)

	paths := make([]string, 0, len(s.Residual))
	for p := range s.Residual {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		patterns := append([]string(nil), s.Residual[p]...)
		sort.Strings(patterns)
		fmt.Fprintf(l.console, "⚠️  %s %s %v\n", color.New(color.FgYellow).Sprint("residual"), p, patterns)
	}

	l.zlog.Info().
		Str("root", s.Root).
		Int("files_scanned", s.FilesScanned).
		Int("files_changed", s.FilesChanged).
		Int("files_skipped", s.FilesSkipped).
		Int("replacements", s.Replacements).
		Int("residual_files", len(s.Residual)).
		Bool("dry_run", s.DryRun).
		Msg("rename complete")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("rebrand")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
