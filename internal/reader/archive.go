package reader

import (
	"archive/zip"
	"errors"
	"log/slog"

	"github.com/sigguard/sigguard/internal/store"
)

// ArchiveReader handles the bare ZIP archive format.
// Unlike the office reader there is no manifest to check: any well-formed
// archive passes.
type ArchiveReader struct {
	byteReader
}

// NewArchiveReader creates a generic-archive reader.
func NewArchiveReader(logger *slog.Logger) *ArchiveReader {
	if logger == nil {
		logger = discardLogger()
	}
	return &ArchiveReader{byteReader{logger: logger}}
}

// Supports reports whether the extension is the bare archive format.
func (r *ArchiveReader) Supports(extension string) bool {
	return store.NormalizeExtension(extension) == "zip"
}

// ValidateStructure returns true iff the file is a structurally valid
// ZIP container.
func (r *ArchiveReader) ValidateStructure(path, extension string) (bool, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			r.logger.Debug("not a valid zip container", "path", path)
			return false, nil
		}
		return false, &ReadError{Path: path, Message: "failed to open container", Err: err}
	}
	zr.Close()
	return true, nil
}
