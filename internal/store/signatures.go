package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"
)

// MaxPatternBytes is the longest magic-byte pattern the store accepts.
const MaxPatternBytes = 64

// Signature is one stored (extension, magic bytes, offset) record.
// MagicBytes is normalized uppercase hex with no separators.
type Signature struct {
	Extension   string
	MagicBytes  string
	Offset      int64
	Description string
	MIMEType    string
}

// NormalizeExtension returns the canonical form of a file extension:
// NFC-normalized, lowercased, with any leading dots stripped.
func NormalizeExtension(extension string) string {
	return strings.TrimLeft(strings.ToLower(norm.NFC.String(extension)), ".")
}

// NormalizePattern returns the canonical form of a magic-byte pattern:
// uppercase hex with spaces removed. Does not validate the result.
func NormalizePattern(pattern string) string {
	return strings.ToUpper(strings.ReplaceAll(pattern, " ", ""))
}

// normalizeSignature validates and canonicalizes a registration.
func normalizeSignature(sig Signature) (Signature, error) {
	sig.Extension = NormalizeExtension(sig.Extension)
	sig.MagicBytes = NormalizePattern(sig.MagicBytes)

	if sig.Extension == "" {
		return sig, &Error{Code: ErrCodeInvalidInput, Message: "extension cannot be empty"}
	}
	if sig.MagicBytes == "" {
		return sig, &Error{Code: ErrCodeInvalidInput, Message: "magic bytes cannot be empty"}
	}
	if sig.Offset < 0 {
		return sig, &Error{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("offset cannot be negative: %d", sig.Offset)}
	}

	raw, err := hex.DecodeString(sig.MagicBytes)
	if err != nil {
		return sig, &Error{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid hex string for magic bytes: %q", sig.MagicBytes)}
	}
	if len(raw) > MaxPatternBytes {
		return sig, &Error{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("magic bytes too long: %d bytes (max %d)", len(raw), MaxPatternBytes)}
	}

	return sig, nil
}

// AddSignature registers a signature record.
// The extension and pattern are normalized before insertion; the write is
// committed immediately (each call is its own atomic unit).
//
// Returns an INVALID_INPUT error for empty or malformed fields and a
// DUPLICATE_SIGNATURE error when the normalized triple already exists.
func (s *Store) AddSignature(ctx context.Context, sig Signature) error {
	sig, err := normalizeSignature(sig)
	if err != nil {
		return err
	}

	s.logger.Debug("adding signature",
		"extension", sig.Extension,
		"magic_bytes", sig.MagicBytes,
		"offset", sig.Offset)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO signatures
		(extension, magic_bytes, offset, description, mime_type)
		VALUES (?, ?, ?, ?, ?)
	`,
		sig.Extension,
		sig.MagicBytes,
		sig.Offset,
		nullable(sig.Description),
		nullable(sig.MIMEType),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return &Error{
				Code: ErrCodeDuplicate,
				Message: fmt.Sprintf("signature for '.%s' with magic bytes %s at offset %d already exists",
					sig.Extension, sig.MagicBytes, sig.Offset),
			}
		}
		return &Error{Code: ErrCodeStorage, Message: fmt.Sprintf("add signature for '.%s'", sig.Extension), Err: err}
	}

	return nil
}

// GetSignatures returns all signature records for an extension, in
// registration order. The extension is normalized before lookup.
//
// Returns a SIGNATURE_NOT_FOUND error when the extension has no records.
func (s *Store) GetSignatures(ctx context.Context, extension string) ([]Signature, error) {
	ext := NormalizeExtension(extension)

	rows, err := s.db.QueryContext(ctx, `
		SELECT extension, magic_bytes, offset, description, mime_type
		FROM signatures
		WHERE extension = ?
		ORDER BY id ASC
	`, ext)
	if err != nil {
		return nil, &Error{Code: ErrCodeStorage, Message: fmt.Sprintf("query signatures for '.%s'", ext), Err: err}
	}
	defer rows.Close()

	var signatures []Signature
	for rows.Next() {
		var sig Signature
		var description, mimeType *string
		if err := rows.Scan(&sig.Extension, &sig.MagicBytes, &sig.Offset, &description, &mimeType); err != nil {
			return nil, &Error{Code: ErrCodeStorage, Message: "scan signature row", Err: err}
		}
		if description != nil {
			sig.Description = *description
		}
		if mimeType != nil {
			sig.MIMEType = *mimeType
		}
		signatures = append(signatures, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Code: ErrCodeStorage, Message: "iterate signature rows", Err: err}
	}

	if len(signatures) == 0 {
		return nil, &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("no signature found for extension '.%s'", ext)}
	}

	s.logger.Debug("signatures found", "extension", ext, "count", len(signatures))
	return signatures, nil
}

// AllExtensions returns the distinct registered extensions, sorted.
func (s *Store) AllExtensions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT extension FROM signatures ORDER BY extension ASC
	`)
	if err != nil {
		return nil, &Error{Code: ErrCodeStorage, Message: "query extensions", Err: err}
	}
	defer rows.Close()

	extensions := []string{}
	for rows.Next() {
		var ext string
		if err := rows.Scan(&ext); err != nil {
			return nil, &Error{Code: ErrCodeStorage, Message: "scan extension row", Err: err}
		}
		extensions = append(extensions, ext)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Code: ErrCodeStorage, Message: "iterate extension rows", Err: err}
	}

	return extensions, nil
}

// Count returns the total number of signature records (not distinct
// extensions).
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM signatures`).Scan(&count); err != nil {
		return 0, &Error{Code: ErrCodeStorage, Message: "count signatures", Err: err}
	}
	return count, nil
}

// nullable maps empty strings to NULL so optional metadata stays optional
// in the table.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
