package validator

import (
	"errors"
	"fmt"
)

// BadSignatureError indicates a stored pattern is not valid hex.
// This is a store-integrity fault, distinct from user input errors: it
// means the reference data itself is corrupt.
type BadSignatureError struct {
	Extension string
	Pattern   string
}

// Error implements the error interface.
func (e *BadSignatureError) Error() string {
	return fmt.Sprintf("invalid magic bytes format for '.%s': %q (must be hex string)", e.Extension, e.Pattern)
}

// IsBadSignature returns true if the error is a corrupt stored signature.
func IsBadSignature(err error) bool {
	var be *BadSignatureError
	return errors.As(err, &be)
}
