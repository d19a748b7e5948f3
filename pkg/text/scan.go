package text

import (
	"strings"
)

// 🔍 FindRemaining returns the patterns that occur in content.
//
// Empty and whitespace-only patterns are ignored and duplicates are reported
// once. The order of the returned slice is not defined; sort it if a stable
// order matters.
func FindRemaining(content string, patterns []string) []string {
	unique := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		unique[p] = struct{}{}
	}

	found := []string{}
	for p := range unique {
		if strings.Contains(content, p) {
			found = append(found, p)
		}
	}
	return found
}

// CountOccurrences returns the non-overlapping occurrence count of every
// pattern found in content. Patterns with no occurrence are omitted.
func CountOccurrences(content string, patterns []string) map[string]int {
	counts := map[string]int{}
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if n := strings.Count(content, p); n > 0 {
			counts[p] = n
		}
	}
	return counts
}
