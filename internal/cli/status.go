package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Status is the payload for the status command.
type Status struct {
	DBPath      string   `json:"db_path"`
	Signatures  int      `json:"signatures"`
	MaxFileSize int64    `json:"max_file_size"`
	Extensions  []string `json:"extensions,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show database location and signature counts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}

	return cmd
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, cfg, err := openStore(opts)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	count, err := st.Count(ctx)
	if err != nil {
		return reportFault(f, err)
	}

	status := Status{
		DBPath:      st.Path(),
		Signatures:  count,
		MaxFileSize: cfg.MaxFileSize,
	}
	if opts.Verbose {
		extensions, err := st.AllExtensions(ctx)
		if err != nil {
			return reportFault(f, err)
		}
		status.Extensions = extensions
	}

	if f.Format == "json" {
		return f.Success(status)
	}

	fmt.Fprintf(f.Writer, "Database:      %s\n", status.DBPath)
	fmt.Fprintf(f.Writer, "Signatures:    %d\n", status.Signatures)
	fmt.Fprintf(f.Writer, "Max file size: %d bytes\n", status.MaxFileSize)
	if status.Signatures == 0 {
		fmt.Fprintln(f.Writer, "Database is empty; any scan command will initialize it.")
	}
	if len(status.Extensions) > 0 {
		fmt.Fprintf(f.Writer, "Extensions:    %s\n", strings.Join(status.Extensions, ", "))
	}
	return nil
}
