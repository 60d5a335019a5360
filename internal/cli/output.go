package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution, file valid
	ExitInvalid      = 1 // Validation failure (file is not what it claims)
	ExitCommandError = 2 // Command error (unreadable file, unknown type, bad flags)
)

// Error codes surfaced in CLI responses.
const (
	ErrCodeFileRead     = "FILE_READ"
	ErrCodeUnknownType  = "UNKNOWN_TYPE"
	ErrCodeBadSignature = "BAD_SIGNATURE"
	ErrCodeStore        = "STORE"
	ErrCodeInput        = "INPUT"
	ErrCodeGeneric      = "ERROR"
)

// ExitError represents an error with a specific exit code.
// A Message-less ExitError carries only the code; the entrypoint will not
// print it again (the command already wrote its own output).
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Silent returns true when the error carries only an exit code.
func (e *ExitError) Silent() bool {
	return e.Message == "" && e.Err == nil
}

// exitCode returns a message-less ExitError for commands that have already
// written their output.
func exitCode(code int) *ExitError {
	return &ExitError{Code: code}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError for errors that aren't ExitErrors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostic output; kept off stdout so JSON stays parseable
	Verbose   bool
	TraceID   string
}

// Response is the standard JSON envelope for CLI output.
type Response struct {
	Status  string     `json:"status"`             // "ok" or "error"
	Data    any        `json:"data,omitempty"`     // success payload
	Error   *ErrorBody `json:"error,omitempty"`    // error details
	TraceID string     `json:"trace_id,omitempty"` // correlates one CLI run
}

// ErrorBody is the error structure for CLI responses.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
// In text mode the payload is expected to be a pre-rendered string.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status:  "error",
			Error:   &ErrorBody{Code: code, Message: message},
			TraceID: f.TraceID,
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Goes to ErrWriter so verbose logs never corrupt JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
