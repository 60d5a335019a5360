package reader

import (
	"archive/zip"
	"errors"
	"log/slog"

	"github.com/sigguard/sigguard/internal/store"
)

// officeManifests maps each compound document extension to the internal
// entries a genuine document must contain.
var officeManifests = map[string][]string{
	"docx": {"[Content_Types].xml", "word/document.xml"},
	"xlsx": {"[Content_Types].xml", "xl/workbook.xml"},
	"pptx": {"[Content_Types].xml", "ppt/presentation.xml"},
}

// OfficeReader handles ZIP-based office document formats.
// A correct ZIP header alone proves nothing for these: the container's
// internal directory must carry the format's manifest entries.
type OfficeReader struct {
	byteReader
}

// NewOfficeReader creates a composite-container reader.
func NewOfficeReader(logger *slog.Logger) *OfficeReader {
	if logger == nil {
		logger = discardLogger()
	}
	return &OfficeReader{byteReader{logger: logger}}
}

// Supports reports whether the extension is a known office document type.
func (r *OfficeReader) Supports(extension string) bool {
	_, ok := officeManifests[store.NormalizeExtension(extension)]
	return ok
}

// ValidateStructure checks that the file is a well-formed ZIP container
// holding every manifest entry the extension requires.
//
// "Not a ZIP at all" returns false; that is an expected validation outcome,
// not a fault. A container corrupt enough to abort mid-read is a fault.
func (r *OfficeReader) ValidateStructure(path, extension string) (bool, error) {
	ext := store.NormalizeExtension(extension)
	required, ok := officeManifests[ext]
	if !ok {
		r.logger.Warn("extension not recognized as office document", "extension", ext)
		return false, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			r.logger.Debug("not a valid zip container", "path", path)
			return false, nil
		}
		return false, &ReadError{Path: path, Message: "failed to open container", Err: err}
	}
	defer zr.Close()

	entries := make(map[string]struct{}, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = struct{}{}
	}

	for _, name := range required {
		if _, ok := entries[name]; !ok {
			r.logger.Debug("missing required entry", "path", path, "extension", ext, "entry", name)
			return false, nil
		}
	}

	r.logger.Debug("all required entries present", "path", path, "extension", ext)
	return true, nil
}
