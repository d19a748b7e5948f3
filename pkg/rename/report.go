package rename

import (
	"sort"

	"github.com/walteh/rebrand/pkg/log"
)

// 📄 FileResult is what happened to one file
type FileResult struct {
	Path         string
	Status       FileStatus
	Changed      bool
	Replacements int
	// Occurrences is the legacy match count found by Scan.
	Occurrences int
	Skipped     bool
	SkipReason  string
	// Remaining lists the legacy variants still present, sorted.
	Remaining []string
}

func (r FileResult) operation() log.FileOperation {
	op := log.FileOperation{
		Path:         r.Path,
		Status:       r.Status.String(),
		Reason:       r.SkipReason,
		IsModified:   r.Changed,
		IsSkipped:    r.Skipped,
		Replacements: r.Replacements,
		Residual:     len(r.Remaining),
	}
	return op
}

// 📊 Report aggregates a run
type Report struct {
	Root              string
	DryRun            bool
	FilesScanned      int
	FilesChanged      int
	FilesSkipped      int
	TotalReplacements int
	// TotalOccurrences is the legacy match count found by Scan.
	TotalOccurrences int
	Files             []FileResult
	// Residual maps a path to the legacy variants still present in it.
	Residual map[string][]string
}

func newReport(root string, dryRun bool) *Report {
	return &Report{
		Root:     root,
		DryRun:   dryRun,
		Residual: map[string][]string{},
	}
}

func (r *Report) add(res FileResult) {
	r.FilesScanned++
	r.Files = append(r.Files, res)
	if res.Skipped {
		r.FilesSkipped++
		return
	}
	if res.Changed {
		r.FilesChanged++
	}
	r.TotalReplacements += res.Replacements
	r.TotalOccurrences += res.Occurrences
	if len(res.Remaining) > 0 {
		r.Residual[res.Path] = res.Remaining
	}
}

// ResidualPaths returns the paths with residual occurrences, sorted.
func (r *Report) ResidualPaths() []string {
	paths := make([]string, 0, len(r.Residual))
	for p := range r.Residual {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Summary converts the report for the console.
func (r *Report) Summary() log.Summary {
	return log.Summary{
		Root:         r.Root,
		FilesScanned: r.FilesScanned,
		FilesChanged: r.FilesChanged,
		FilesSkipped: r.FilesSkipped,
		Replacements: r.TotalReplacements,
		DryRun:       r.DryRun,
		Residual:     r.Residual,
	}
}
