package reader

import "log/slog"

// Selector chooses the ContentReader strategy for an extension.
//
// Strategies are tried in a fixed order and the first match wins. The
// office reader must come before the archive reader: compound documents
// are themselves valid ZIP archives and would otherwise be dispatched to
// the strategy that skips their manifest check.
type Selector struct {
	readers  []ContentReader
	fallback ContentReader
	logger   *slog.Logger
}

// NewSelector creates a selector over the full strategy set.
func NewSelector(logger *slog.Logger) *Selector {
	if logger == nil {
		logger = discardLogger()
	}
	flat := NewFlatReader(logger)
	return &Selector{
		readers: []ContentReader{
			NewOfficeReader(logger),
			NewArchiveReader(logger),
			flat,
		},
		fallback: flat,
		logger:   logger,
	}
}

// Select returns the first strategy that supports the extension, or the
// flat-binary reader as a universal fallback. The fallback performs no
// structural validation, so an unrecognized type is judged on magic bytes
// alone.
func (s *Selector) Select(extension string) ContentReader {
	for _, r := range s.readers {
		if r.Supports(extension) {
			return r
		}
	}
	s.logger.Debug("no specific reader for extension, using flat fallback", "extension", extension)
	return s.fallback
}
