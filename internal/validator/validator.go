package validator

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sigguard/sigguard/internal/reader"
	"github.com/sigguard/sigguard/internal/store"
)

// DefaultMaxFileSize caps candidate files at 100 MiB.
const DefaultMaxFileSize = 100 << 20

// mismatchPreviewLen is how many leading bytes are reported when no
// signature matches.
const mismatchPreviewLen = 8

// SignatureSource is the read-only slice of the store the validator needs.
type SignatureSource interface {
	GetSignatures(ctx context.Context, extension string) ([]store.Signature, error)
	Close() error
}

// ReaderSelector chooses the content-reading strategy for an extension.
type ReaderSelector interface {
	Select(extension string) reader.ContentReader
}

// Validator orchestrates signature lookup, byte comparison, and structural
// validation for one file at a time.
type Validator struct {
	signatures  SignatureSource
	selector    ReaderSelector
	maxFileSize int64
	logger      *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxFileSize overrides the candidate file size cap.
func WithMaxFileSize(limit int64) Option {
	return func(v *Validator) {
		if limit > 0 {
			v.maxFileSize = limit
		}
	}
}

// WithLogger sets the logger used for diagnostic output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a Validator over a signature source and a reader selector.
func New(signatures SignatureSource, selector ReaderSelector, opts ...Option) *Validator {
	v := &Validator{
		signatures:  signatures,
		selector:    selector,
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks whether the file's content matches the type its
// extension claims.
//
// The error channel carries faults only: unreadable or oversized files,
// extensions with no registered signatures, and corrupt stored patterns.
// A file that is simply not what it claims to be is a non-error Result
// with Valid=false and a Reason.
func (v *Validator) Validate(ctx context.Context, path string) (Result, error) {
	v.logger.Info("validating file", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, &reader.ReadError{Path: path, Message: "file not found", Err: err}
	}
	if !info.Mode().IsRegular() {
		return Result{}, &reader.ReadError{Path: path, Message: "path is not a regular file"}
	}
	if info.Size() > v.maxFileSize {
		return Result{}, &reader.ReadError{
			Path:    path,
			Message: fmt.Sprintf("file too large: %d bytes (max %d)", info.Size(), v.maxFileSize),
		}
	}

	ext := store.NormalizeExtension(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return Result{Path: path, Valid: false, Reason: ReasonNoExtension}, nil
	}
	v.logger.Debug("file extension", "extension", ext, "size", info.Size())

	r := v.selector.Select(ext)

	signatures, err := v.signatures.GetSignatures(ctx, ext)
	if err != nil {
		return Result{}, err
	}
	v.logger.Debug("checking signatures", "extension", ext, "count", len(signatures))

	var lastPattern string
	for _, sig := range signatures {
		lastPattern = sig.MagicBytes

		match, err := v.checkSignature(path, sig, r)
		if err != nil {
			return Result{}, err
		}
		if !match {
			continue
		}

		// Magic bytes match; first structural pass wins. A structural
		// failure here is final: later records are not tried.
		ok, err := r.ValidateStructure(path, ext)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			res := Result{Path: path, Extension: ext, Valid: false, Reason: ReasonBadStructure, Expected: sig.MagicBytes}
			v.logger.Warn("structure validation failed", "path", path, "extension", ext)
			return res, nil
		}

		v.logger.Info("file validated", "path", path, "extension", ext)
		return Result{Path: path, Extension: ext, Valid: true}, nil
	}

	// No signature matched; report the file's leading bytes for diagnosis.
	actual, err := r.ReadBytes(path, mismatchPreviewLen, 0)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Path:      path,
		Extension: ext,
		Valid:     false,
		Reason:    ReasonMagicMismatch,
		Expected:  lastPattern,
		Actual:    strings.ToUpper(hex.EncodeToString(actual)),
	}
	v.logger.Warn("magic bytes mismatch", "path", path, "extension", ext,
		"expected", res.Expected, "actual", res.Actual)
	return res, nil
}

// checkSignature compares the file's bytes at the record's offset against
// its pattern.
func (v *Validator) checkSignature(path string, sig store.Signature, r reader.ContentReader) (bool, error) {
	expected, err := hex.DecodeString(sig.MagicBytes)
	if err != nil {
		return false, &BadSignatureError{Extension: sig.Extension, Pattern: sig.MagicBytes}
	}

	actual, err := r.ReadBytes(path, len(expected), sig.Offset)
	if err != nil {
		return false, err
	}

	match := bytes.Equal(actual, expected)
	v.logger.Debug("signature comparison", "path", path,
		"offset", sig.Offset, "pattern", sig.MagicBytes, "match", match)
	return match, nil
}

// Close releases the underlying signature source. Idempotent.
func (v *Validator) Close() error {
	return v.signatures.Close()
}
