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

package rename

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/rebrand/pkg/guard"
	"github.com/walteh/rebrand/pkg/log"
	"github.com/walteh/rebrand/pkg/plan"
	"github.com/walteh/rebrand/pkg/text"
	"github.com/walteh/rebrand/pkg/walk"
	"github.com/walteh/rebrand/pkg/workspace"
)

// ErrResidualOccurrences is returned in strict mode when a legacy variant
// survives the rewrite.
var ErrResidualOccurrences = errors.Base("residual occurrences")

// 📢 Reporter receives progress from a run
type Reporter interface {
	LogFileOperation(ctx context.Context, op log.FileOperation)
	Diff(path, diff string)
	Summary(s log.Summary)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) LogFileOperation(context.Context, log.FileOperation) {}
func (NopReporter) Diff(string, string)                                 {}
func (NopReporter) Summary(log.Summary)                                 {}

var _ Reporter = (*log.Logger)(nil)

// 📂 Lister enumerates candidate files under a root
type Lister interface {
	Files(ctx context.Context, root string) ([]walk.Entry, error)
}

// 🔧 Options configures a run
type Options struct {
	// Root is the directory to rewrite
	Root string
	// Plan is the replacement plan; required
	Plan *plan.Result
	// Replacer applies the plan; defaults to single-pass
	Replacer text.Replacer
	// Lister enumerates files; defaults to a walker with an empty policy
	Lister Lister
	// Files reads and writes content; defaults to a workspace rooted at Root
	Files workspace.FileManager
	// Reporter receives progress; defaults to NopReporter
	Reporter Reporter
	// Guard is checked before anything is read; defaults to guard.Disabled
	Guard guard.Guard

	DryRun  bool // compute and report without writing
	Verbose bool // report every file and, in dry-run, a diff preview
	Strict  bool // residual occurrences fail the run
}

func (o *Options) setDefaults() error {
	if o.Plan == nil {
		return errors.Errorf("plan is required")
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.Replacer == nil {
		o.Replacer = text.NewSinglePassReplacer()
	}
	if o.Lister == nil {
		o.Lister = walk.New(walk.Policy{})
	}
	if o.Files == nil {
		o.Files = workspace.New(o.Root)
	}
	if o.Reporter == nil {
		o.Reporter = NopReporter{}
	}
	if o.Guard == nil {
		o.Guard = guard.Disabled{}
	}
	return nil
}

// 🏃 Run rewrites every candidate file under opts.Root with opts.Plan.
//
// Files are processed one at a time in path order and the first read or
// write error aborts the run. The returned report is non-nil whenever the
// walk succeeded, including when strict mode fails the run.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	return execute(ctx, opts, false)
}

// 🔍 Scan reports where the legacy variants of opts.Plan occur without
// rewriting anything. DryRun and Replacer are ignored.
func Scan(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	opts.DryRun = true
	return execute(ctx, opts, true)
}

func execute(ctx context.Context, opts Options, auditOnly bool) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	if err := opts.Guard.Check(ctx); err != nil {
		return nil, errors.Errorf("checking environment: %w", err)
	}

	entries, err := opts.Lister.Files(ctx, opts.Root)
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}

	logger.Debug().
		Str("root", opts.Root).
		Int("files", len(entries)).
		Int("pairs", len(opts.Plan.Pairs)).
		Bool("dry_run", opts.DryRun).
		Bool("audit_only", auditOnly).
		Msg("starting rename")

	report := newReport(opts.Root, opts.DryRun)
	patterns := opts.Plan.Patterns()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("rename cancelled: %w", err)
		}

		var res FileResult
		if auditOnly {
			res, err = audit(ctx, opts, entry, patterns)
		} else {
			res, err = process(ctx, opts, entry, patterns)
		}
		if err != nil {
			return report, errors.Errorf("processing %s: %w", entry.Path, err)
		}

		report.add(res)
		if opts.Verbose {
			opts.Reporter.LogFileOperation(ctx, res.operation())
		}
	}

	opts.Reporter.Summary(report.Summary())

	if opts.Strict && len(report.Residual) > 0 {
		return report, errors.WithDetails(
			errors.Errorf("%w in %d files", ErrResidualOccurrences, len(report.Residual)),
			"files", report.ResidualPaths(),
		)
	}

	return report, nil
}

// process rewrites a single file and audits the result.
func process(ctx context.Context, opts Options, entry walk.Entry, patterns []string) (FileResult, error) {
	content, err := opts.Files.ReadFile(ctx, entry.Path)
	if err != nil {
		return FileResult{}, err
	}

	if walk.IsBinary(content) {
		return skipped(entry.Path, "binary"), nil
	}

	res := opts.Replacer.Apply(string(content), opts.Plan.Pairs)

	out := FileResult{
		Path:         entry.Path,
		Status:       StatusUnchanged,
		Replacements: res.ReplacementsMade,
		Remaining:    sorted(text.FindRemaining(res.Updated, patterns)),
	}

	if res.Changed() {
		out.Changed = true
		if opts.DryRun {
			out.Status = StatusWouldEdit
			if opts.Verbose {
				opts.Reporter.Diff(entry.Path, Preview(res.Original, res.Updated))
			}
		} else {
			if err := opts.Files.WriteFileAtomic(ctx, entry.Path, []byte(res.Updated), entry.Mode.Perm()); err != nil {
				return FileResult{}, err
			}
			out.Status = StatusUpdated
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("file", entry.Path).
		Str("status", out.Status.String()).
		Int("replacements", out.Replacements).
		Strs("remaining", out.Remaining).
		Msg("processed file")

	return out, nil
}

// audit counts legacy occurrences in a single file.
func audit(ctx context.Context, opts Options, entry walk.Entry, patterns []string) (FileResult, error) {
	content, err := opts.Files.ReadFile(ctx, entry.Path)
	if err != nil {
		return FileResult{}, err
	}

	if walk.IsBinary(content) {
		return skipped(entry.Path, "binary"), nil
	}

	counts := text.CountOccurrences(string(content), patterns)
	total := 0
	remaining := make([]string, 0, len(counts))
	for pattern, n := range counts {
		total += n
		remaining = append(remaining, pattern)
	}

	return FileResult{
		Path:         entry.Path,
		Status:       StatusUnchanged,
		Replacements: 0,
		Occurrences:  total,
		Remaining:    sorted(remaining),
	}, nil
}

func skipped(path, reason string) FileResult {
	return FileResult{
		Path:       path,
		Status:     StatusSkipped,
		Skipped:    true,
		SkipReason: reason,
	}
}

func sorted(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	sort.Strings(s)
	return s
}
