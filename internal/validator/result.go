package validator

import "fmt"

// Reason categorizes why a file failed validation.
type Reason string

const (
	// ReasonNoExtension indicates the file name carries no extension, so
	// there is no claimed type to validate against.
	ReasonNoExtension Reason = "NO_EXTENSION"

	// ReasonMagicMismatch indicates no registered pattern matched the
	// file's actual bytes.
	ReasonMagicMismatch Reason = "MAGIC_MISMATCH"

	// ReasonBadStructure indicates the magic bytes matched but the
	// container's internal layout failed the format's manifest check.
	// Stronger than a plain mismatch: it implies a crafted or corrupted
	// composite file, not just a wrong extension.
	ReasonBadStructure Reason = "BAD_STRUCTURE"
)

// Result is the verdict of one validation call. An invalid file is an
// expected outcome, not an error: the error channel of Validate is
// reserved for faults (unreadable file, unknown extension, corrupt store).
type Result struct {
	Path      string
	Extension string
	Valid     bool
	Reason    Reason

	// Expected and Actual carry diagnostic bytes as uppercase hex.
	// For a mismatch, Expected is the last pattern compared and Actual is
	// the file's leading bytes.
	Expected string
	Actual   string
}

// Message renders a human-readable explanation of the verdict.
func (r Result) Message() string {
	if r.Valid {
		return fmt.Sprintf("file %q validated successfully as '.%s'", r.Path, r.Extension)
	}
	switch r.Reason {
	case ReasonNoExtension:
		return fmt.Sprintf("file has no extension: %q", r.Path)
	case ReasonBadStructure:
		return fmt.Sprintf("file %q has correct magic bytes for '.%s' but failed internal structure validation",
			r.Path, r.Extension)
	default:
		return fmt.Sprintf("file %q has extension '.%s' but magic bytes don't match (expected %s, found %s)",
			r.Path, r.Extension, r.Expected, r.Actual)
	}
}
