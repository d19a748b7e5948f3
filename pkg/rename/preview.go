package rename

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Preview renders the changed lines between original and updated, removed
// lines prefixed with "-" and added lines with "+". Unchanged lines are
// omitted.
func Preview(original, updated string) string {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(original, updated)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
