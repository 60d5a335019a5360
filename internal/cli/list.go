package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// categories groups extensions for the text listing. Extensions outside
// every category land under "Other".
var categories = []struct {
	Name       string
	Extensions []string
}{
	{"Documents", []string{"pdf", "docx", "xlsx", "pptx", "xml"}},
	{"Images", []string{"jpg", "jpeg", "png", "gif", "bmp", "ico", "webp"}},
	{"Archives", []string{"zip", "rar", "7z", "tar", "gz"}},
	{"Executables", []string{"exe", "dll", "elf"}},
	{"Media", []string{"mp3", "mp4", "avi", "mkv", "wav", "flac"}},
	{"Databases", []string{"sqlite"}},
}

// ListEntry is one extension in the list payload.
type ListEntry struct {
	Extension  string `json:"extension"`
	Signatures int    `json:"signatures"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported file types",
		Long:  "List every extension with registered signatures, grouped by category.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, _, err := openSeededStore(ctx, opts, f)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	extensions, err := st.AllExtensions(ctx)
	if err != nil {
		return reportFault(f, err)
	}

	entries := make([]ListEntry, 0, len(extensions))
	for _, ext := range extensions {
		sigs, err := st.GetSignatures(ctx, ext)
		if err != nil {
			return reportFault(f, err)
		}
		entries = append(entries, ListEntry{Extension: ext, Signatures: len(sigs)})
	}

	if f.Format == "json" {
		return f.Success(entries)
	}

	renderList(f, entries)
	return nil
}

// renderList writes the category-grouped text listing.
func renderList(f *OutputFormatter, entries []ListEntry) {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Extension] = e.Signatures
	}

	fmt.Fprintf(f.Writer, "Supported file types (%d):\n", len(entries))

	categorized := make(map[string]struct{})
	for _, cat := range categories {
		var present []string
		for _, ext := range cat.Extensions {
			categorized[ext] = struct{}{}
			if _, ok := counts[ext]; ok {
				present = append(present, ext)
			}
		}
		if len(present) == 0 {
			continue
		}
		sort.Strings(present)

		fmt.Fprintf(f.Writer, "\n%s:\n", cat.Name)
		for _, ext := range present {
			fmt.Fprintf(f.Writer, "  .%s (%s)\n", ext, plural(counts[ext], "signature"))
		}
	}

	var other []string
	for _, e := range entries {
		if _, ok := categorized[e.Extension]; !ok {
			other = append(other, e.Extension)
		}
	}
	if len(other) > 0 {
		sort.Strings(other)
		fmt.Fprintf(f.Writer, "\nOther:\n")
		for _, ext := range other {
			fmt.Fprintf(f.Writer, "  .%s (%s)\n", ext, plural(counts[ext], "signature"))
		}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
