package walk

import (
	"bytes"
)

// SniffLen is how many leading bytes IsBinary inspects.
const SniffLen = 24

// IsBinary reports whether content looks binary: a NUL byte within the first
// SniffLen bytes. This is a best-effort guess. Binary formats whose header
// has no NUL in that window (some images, compressed streams) are reported
// as text, which is why a binary extension list is also applied.
func IsBinary(content []byte) bool {
	n := len(content)
	if n > SniffLen {
		n = SniffLen
	}
	return bytes.IndexByte(content[:n], 0) >= 0
}
