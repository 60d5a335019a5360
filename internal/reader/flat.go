package reader

import (
	"log/slog"

	"github.com/sigguard/sigguard/internal/store"
)

// flatFormats are the simple formats whose magic bytes alone are
// sufficient proof: no internal structure to check.
var flatFormats = map[string]struct{}{
	// Images
	"pdf": {}, "png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {},
	"ico": {}, "webp": {},
	// Audio/video
	"mp3": {}, "mp4": {}, "avi": {}, "mkv": {}, "wav": {}, "flac": {},
	// Executables and archives
	"exe": {}, "dll": {}, "elf": {}, "tar": {}, "gz": {}, "rar": {}, "7z": {},
	// Text and data
	"xml": {}, "html": {}, "json": {}, "sqlite": {}, "db": {},
}

// FlatReader handles flat binary formats and doubles as the universal
// fallback for unrecognized extensions.
type FlatReader struct {
	byteReader
}

// NewFlatReader creates a flat-binary reader.
func NewFlatReader(logger *slog.Logger) *FlatReader {
	if logger == nil {
		logger = discardLogger()
	}
	return &FlatReader{byteReader{logger: logger}}
}

// Supports reports whether the extension is a known flat format.
func (r *FlatReader) Supports(extension string) bool {
	_, ok := flatFormats[store.NormalizeExtension(extension)]
	return ok
}

// ValidateStructure always returns true: a magic-byte match is all the
// proof a flat format offers.
func (r *FlatReader) ValidateStructure(path, extension string) (bool, error) {
	r.logger.Debug("flat format, no structural validation", "path", path, "extension", extension)
	return true, nil
}
