package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ScanResult is the payload for a single-file scan.
type ScanResult struct {
	Path      string `json:"path"`
	Extension string `json:"extension,omitempty"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
	Message   string `json:"message"`
	Digest    string `json:"digest,omitempty"`
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	var withHash bool

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Validate that a file's content matches its extension",
		Long: `Validate a single file against the signature database.

Compares the file's magic bytes with the signatures registered for its
extension, and for container formats checks the internal structure too.

Exit codes: 0 valid, 1 invalid, 2 error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootOpts, args[0], withHash, cmd)
		},
	}

	cmd.Flags().BoolVar(&withHash, "hash", false, "also print the file's SHA-256 digest")

	return cmd
}

func runScan(opts *RootOptions, path string, withHash bool, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, cfg, err := openSeededStore(ctx, opts, f)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	v := newValidator(st, cfg, opts)

	res, err := v.Validate(ctx, path)
	if err != nil {
		return reportFault(f, err)
	}

	payload := ScanResult{
		Path:      res.Path,
		Extension: res.Extension,
		Valid:     res.Valid,
		Reason:    string(res.Reason),
		Expected:  res.Expected,
		Actual:    res.Actual,
		Message:   res.Message(),
	}

	if withHash {
		digest, err := v.ComputeDigest(path)
		if err != nil {
			return reportFault(f, err)
		}
		payload.Digest = digest
	}

	if err := outputScanResult(f, payload); err != nil {
		return err
	}
	if !res.Valid {
		return exitCode(ExitInvalid)
	}
	return nil
}

func outputScanResult(f *OutputFormatter, payload ScanResult) error {
	if f.Format == "json" {
		return f.Success(payload)
	}

	if payload.Valid {
		fmt.Fprintf(f.Writer, "✓ %s: valid '.%s' file\n", payload.Path, payload.Extension)
	} else {
		fmt.Fprintf(f.Writer, "✗ %s\n", payload.Message)
	}
	if payload.Digest != "" {
		fmt.Fprintf(f.Writer, "  sha256: %s\n", payload.Digest)
	}
	return nil
}
