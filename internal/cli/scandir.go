package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigguard/sigguard/internal/store"
)

// DirSummary is the payload for a directory scan.
type DirSummary struct {
	Directory string       `json:"directory"`
	Scanned   int          `json:"scanned"`
	Valid     int          `json:"valid"`
	Invalid   int          `json:"invalid"`
	Errors    int          `json:"errors"`
	Findings  []ScanResult `json:"findings,omitempty"`
}

// NewScanDirCommand creates the scan-dir command.
func NewScanDirCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		recursive  bool
		extensions []string
	)

	cmd := &cobra.Command{
		Use:   "scan-dir <directory>",
		Short: "Validate every file in a directory",
		Long: `Validate all files in a directory against the signature database.

Files whose extension has no registered signature are counted as errors,
not failures. Exit code is 0 only if nothing was invalid or errored.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScanDir(rootOpts, args[0], recursive, extensions, cmd)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "scan subdirectories recursively")
	cmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "only scan files with these extensions (repeatable)")

	return cmd
}

func runScanDir(opts *RootOptions, dir string, recursive bool, extensions []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		if err := f.Error(ErrCodeInput, fmt.Sprintf("not a directory: %q", dir)); err != nil {
			return err
		}
		return exitCode(ExitCommandError)
	}

	files, err := collectFiles(dir, recursive, extensions)
	if err != nil {
		return reportFault(f, err)
	}

	st, cfg, err := openSeededStore(ctx, opts, f)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	v := newValidator(st, cfg, opts)

	summary := DirSummary{Directory: dir, Scanned: len(files)}
	for _, path := range files {
		res, err := v.Validate(ctx, path)
		if err != nil {
			summary.Errors++
			f.VerboseLog("error: %s: %v", path, err)
			continue
		}
		if res.Valid {
			summary.Valid++
			f.VerboseLog("valid: %s", path)
			continue
		}

		summary.Invalid++
		summary.Findings = append(summary.Findings, ScanResult{
			Path:      res.Path,
			Extension: res.Extension,
			Valid:     false,
			Reason:    string(res.Reason),
			Expected:  res.Expected,
			Actual:    res.Actual,
			Message:   res.Message(),
		})
	}

	if err := outputDirSummary(f, summary); err != nil {
		return err
	}
	if summary.Invalid > 0 || summary.Errors > 0 {
		return exitCode(ExitInvalid)
	}
	return nil
}

// collectFiles gathers the candidate files, applying the optional
// extension filter.
func collectFiles(dir string, recursive bool, extensions []string) ([]string, error) {
	filter := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		filter[store.NormalizeExtension(ext)] = struct{}{}
	}

	matches := func(path string) bool {
		if len(filter) == 0 {
			return true
		}
		ext := store.NormalizeExtension(strings.TrimPrefix(filepath.Ext(path), "."))
		_, ok := filter[ext]
		return ok
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			path := filepath.Join(dir, entry.Name())
			if matches(path) {
				files = append(files, path)
			}
		}
	}
	return files, nil
}

func outputDirSummary(f *OutputFormatter, summary DirSummary) error {
	if f.Format == "json" {
		return f.Success(summary)
	}

	for _, finding := range summary.Findings {
		fmt.Fprintf(f.Writer, "✗ %s\n", finding.Message)
	}

	fmt.Fprintf(f.Writer, "\nScan summary for %s:\n", summary.Directory)
	fmt.Fprintf(f.Writer, "  Scanned: %d\n", summary.Scanned)
	fmt.Fprintf(f.Writer, "  Valid:   %d\n", summary.Valid)
	fmt.Fprintf(f.Writer, "  Invalid: %d\n", summary.Invalid)
	if summary.Errors > 0 {
		fmt.Fprintf(f.Writer, "  Errors:  %d\n", summary.Errors)
	}
	return nil
}
