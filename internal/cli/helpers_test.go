package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// testOptions returns root options pointing at an isolated database.
// HOME is redirected so config resolution never touches the real one.
func testOptions(t *testing.T) *RootOptions {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return &RootOptions{
		Format: "text",
		DBPath: filepath.Join(t.TempDir(), "signatures.db"),
	}
}

// execute runs a command with args and returns stdout, stderr and the error.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// pdfContent starts with the PDF magic bytes 25504446.
func pdfContent() []byte {
	return []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n%%EOF\n")
}

// pngContent starts with the PNG magic bytes 89504E470D0A1A0A.
func pngContent() []byte {
	return append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("fakeimagedata")...)
}
