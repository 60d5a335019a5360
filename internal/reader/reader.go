package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ContentReader extracts raw bytes from a candidate file and performs
// format-specific structural validation.
//
// The implementer set is fixed: FlatReader, OfficeReader, ArchiveReader.
// The Selector dispatches between them by extension.
type ContentReader interface {
	// ReadBytes reads up to length bytes starting at offset. Returns fewer
	// bytes than requested at end of file; never pads.
	ReadBytes(path string, length int, offset int64) ([]byte, error)

	// Supports reports whether this reader handles the extension.
	// Pure predicate, no I/O.
	Supports(extension string) bool

	// ValidateStructure performs format-specific nested validation.
	// "Wrong format" is a false return; an I/O failure mid-check is an error.
	ValidateStructure(path, extension string) (bool, error)
}

// ReadError indicates the candidate file could not be accessed or read.
// Always terminal for the current call; never retried.
type ReadError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Message, e.Path)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsReadError returns true if the error is a file access failure.
// Uses errors.As to handle wrapped errors.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// byteReader implements the shared ReadBytes behavior for all strategies.
type byteReader struct {
	logger *slog.Logger
}

func (r byteReader) ReadBytes(path string, length int, offset int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Message: "failed to read file", Err: err}
	}
	defer f.Close()

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, &ReadError{Path: path, Message: "failed to read file", Err: err}
	}

	r.logger.Debug("read bytes", "path", path, "offset", offset, "requested", length, "got", n)
	return buf[:n], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
