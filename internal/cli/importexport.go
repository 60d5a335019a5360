package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigguard/sigguard/internal/sigdata"
)

// ImportStats is the payload for the import command.
type ImportStats struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load signatures from a JSON signature set",
		Long: `Load signatures from a JSON file into the database.

Signatures already present are skipped, not treated as errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, _, err := openStore(opts)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	stats, err := sigdata.LoadFile(ctx, path, st, opts.Logger)
	if err != nil {
		if err := f.Error(ErrCodeInput, err.Error()); err != nil {
			return err
		}
		return exitCode(ExitCommandError)
	}

	if f.Format == "json" {
		return f.Success(ImportStats{Loaded: stats.Loaded, Skipped: stats.Skipped})
	}
	fmt.Fprintf(f.Writer, "Loaded %d signatures, skipped %d duplicates\n", stats.Loaded, stats.Skipped)
	return nil
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write all signatures to a JSON signature set",
		Long:  "Serialize the full signature database to a JSON file. Use '-' for stdout.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, _, err := openStore(opts)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	if path == "-" {
		return sigdata.Export(ctx, st, f.Writer)
	}

	out, err := os.Create(path)
	if err != nil {
		return reportFault(f, err)
	}
	defer out.Close()

	if err := sigdata.Export(ctx, st, out); err != nil {
		return reportFault(f, err)
	}

	count, err := st.Count(ctx)
	if err != nil {
		return reportFault(f, err)
	}

	if f.Format == "json" {
		return f.Success(map[string]any{"exported": count, "path": path})
	}
	fmt.Fprintf(f.Writer, "Exported %d signatures to %s\n", count, path)
	return nil
}
