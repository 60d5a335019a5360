package cli

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sigguard/sigguard/internal/config"
	"github.com/sigguard/sigguard/internal/reader"
	"github.com/sigguard/sigguard/internal/sigdata"
	"github.com/sigguard/sigguard/internal/store"
	"github.com/sigguard/sigguard/internal/validator"
)

// newFormatter builds the output formatter for one command run.
// Each run gets a fresh trace ID for log/output correlation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   uuid.NewString(),
	}
}

// openStore resolves configuration and opens the signature database.
func openStore(opts *RootOptions) (*store.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.DBPath
	if opts.DBPath != "" {
		path = opts.DBPath
	}

	st, err := store.Open(path, store.WithLogger(opts.Logger))
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}

// openSeededStore opens the store and loads the embedded default
// signature set if the store is empty.
func openSeededStore(ctx context.Context, opts *RootOptions, f *OutputFormatter) (*store.Store, *config.Config, error) {
	st, cfg, err := openStore(opts)
	if err != nil {
		return nil, nil, err
	}

	stats, err := sigdata.SeedDefaults(ctx, st, opts.Logger)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if stats.Loaded > 0 {
		f.VerboseLog("Initialized signature database with %d signatures", stats.Loaded)
	}
	return st, cfg, nil
}

// newValidator wires the validator over an opened store.
func newValidator(st *store.Store, cfg *config.Config, opts *RootOptions) *validator.Validator {
	return validator.New(
		st,
		reader.NewSelector(opts.Logger),
		validator.WithMaxFileSize(cfg.MaxFileSize),
		validator.WithLogger(opts.Logger),
	)
}

// faultCode maps a core error to a CLI error code.
func faultCode(err error) string {
	switch {
	case store.IsNotFound(err):
		return ErrCodeUnknownType
	case store.IsDuplicate(err), store.IsInvalidInput(err):
		return ErrCodeInput
	case reader.IsReadError(err):
		return ErrCodeFileRead
	case validator.IsBadSignature(err):
		return ErrCodeBadSignature
	default:
		var se *store.Error
		if errors.As(err, &se) {
			return ErrCodeStore
		}
		return ErrCodeGeneric
	}
}

// reportFault writes the error in the configured format and converts it
// to a silent command-error exit.
func reportFault(f *OutputFormatter, err error) error {
	if err := f.Error(faultCode(err), err.Error()); err != nil {
		return err
	}
	return exitCode(ExitCommandError)
}
