package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	expected := []string{"scan", "scan-dir", "list", "status", "add", "import", "export"}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestRootCommandRejectsInvalidFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCommand()
	_, _, err := execute(t, cmd, "--format", "xml", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("yaml"))
	assert.False(t, isValidFormat(""))
}

func TestRootCommandEndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeTestFile(t, t.TempDir(), "report.pdf", pdfContent())

	cmd := NewRootCommand()
	out, _, err := execute(t, cmd, "scan", "--db", path+".db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid '.pdf' file")
}
