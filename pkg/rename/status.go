package rename

import "github.com/walteh/rebrand/pkg/log"

// 📊 FileStatus is the outcome for one file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // content had nothing to replace
	StatusUpdated              // content was rewritten on disk
	StatusWouldEdit            // content would be rewritten (dry-run)
	StatusSkipped              // file was classified as binary
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return log.StatusUnchanged
	case StatusUpdated:
		return log.StatusUpdated
	case StatusWouldEdit:
		return log.StatusWouldEdit
	case StatusSkipped:
		return log.StatusSkipped
	default:
		return "unknown"
	}
}
