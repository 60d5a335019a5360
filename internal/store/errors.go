package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates an extension with no registered signatures.
	// This signals a gap in reference data, not a bad file.
	ErrCodeNotFound ErrorCode = "SIGNATURE_NOT_FOUND"

	// ErrCodeDuplicate indicates an (extension, magic bytes, offset) triple
	// that already exists in the store.
	ErrCodeDuplicate ErrorCode = "DUPLICATE_SIGNATURE"

	// ErrCodeInvalidInput indicates a registration with an empty extension,
	// empty pattern, malformed hex, or an oversized pattern.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeStorage indicates a failure of the backing database itself.
	ErrCodeStorage ErrorCode = "STORAGE"
)

// Error represents a signature store failure.
//
// The Code distinguishes contract violations (duplicate, invalid input),
// reference-data gaps (not found), and faults of the backing database.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a missing-signature error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeNotFound
}

// IsDuplicate returns true if the error is a duplicate-signature error.
func IsDuplicate(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeDuplicate
}

// IsInvalidInput returns true if the error is a registration input error.
func IsInvalidInput(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeInvalidInput
}
