package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigguard/sigguard/internal/store"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		offset      int64
		description string
		mimeType    string
	)

	cmd := &cobra.Command{
		Use:   "add <extension> <hex-pattern>",
		Short: "Register a new file signature",
		Long: `Register a magic-byte signature for a file extension.

The pattern is a hex string; spaces are allowed and case does not matter.
An extension may own multiple signatures at different patterns or offsets.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args[0], args[1], offset, description, mimeType, cmd)
		},
	}

	cmd.Flags().Int64Var(&offset, "offset", 0, "byte offset where the pattern appears")
	cmd.Flags().StringVar(&description, "description", "", "human-readable description")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type")

	return cmd
}

func runAdd(opts *RootOptions, extension, pattern string, offset int64, description, mimeType string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, _, err := openStore(opts)
	if err != nil {
		return reportFault(f, err)
	}
	defer st.Close()

	sig := store.Signature{
		Extension:   extension,
		MagicBytes:  pattern,
		Offset:      offset,
		Description: description,
		MIMEType:    mimeType,
	}
	if err := st.AddSignature(ctx, sig); err != nil {
		return reportFault(f, err)
	}

	ext := store.NormalizeExtension(extension)
	if f.Format == "json" {
		return f.Success(ListEntry{Extension: ext, Signatures: 1})
	}
	fmt.Fprintf(f.Writer, "Added signature for '.%s': %s at offset %d\n",
		ext, store.NormalizePattern(pattern), offset)
	return nil
}
