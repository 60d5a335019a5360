package validator

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigguard/sigguard/internal/reader"
	"github.com/sigguard/sigguard/internal/store"
)

var (
	pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}
	pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// newTestValidator builds a validator over a temp store seeded with the
// given signatures.
func newTestValidator(t *testing.T, sigs []store.Signature, opts ...Option) (*Validator, *store.Store) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "signatures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	for _, sig := range sigs {
		require.NoError(t, s.AddSignature(ctx, sig))
	}

	return New(s, reader.NewSelector(nil), opts...), s
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestValidate_ValidMatch(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "pdf", MagicBytes: "25504446"},
	})

	path := writeFile(t, t.TempDir(), "a.pdf", append(pdfMagic, []byte("-1.7 rest of file")...))

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "pdf", res.Extension)
}

func TestValidate_SpoofedFile(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "pdf", MagicBytes: "25504446"},
		{Extension: "png", MagicBytes: "89504E470D0A1A0A"},
	})

	// PNG content wearing a .pdf name
	path := writeFile(t, t.TempDir(), "fake.pdf", append(pngMagic, []byte("IHDR")...))

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonMagicMismatch, res.Reason)
	assert.Equal(t, "25504446", res.Expected)
	assert.Contains(t, res.Actual, "89504E47")
	assert.Contains(t, res.Message(), "25504446")
}

func TestValidate_MultiSignatureOR(t *testing.T) {
	// Two variants; the file matches only the second.
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "jpg", MagicBytes: "FFD8FFE0"},
		{Extension: "jpg", MagicBytes: "FFD8FFE1"},
	})

	path := writeFile(t, t.TempDir(), "photo.jpg", []byte{0xFF, 0xD8, 0xFF, 0xE1, 0x00, 0x10})

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidate_SignatureAtOffset(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "tar", MagicBytes: "7573746172", Offset: 257}, // "ustar"
	})

	content := make([]byte, 512)
	copy(content[257:], "ustar")
	path := writeFile(t, t.TempDir(), "backup.tar", content)

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidate_UnknownExtension(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "pdf", MagicBytes: "25504446"},
	})

	path := writeFile(t, t.TempDir(), "x.xyz", []byte("whatever"))

	_, err := v.Validate(context.Background(), path)
	require.Error(t, err)
	assert.True(t, store.IsNotFound(err))
}

func TestValidate_NoExtension(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	path := writeFile(t, t.TempDir(), "README", []byte("no extension here"))

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonNoExtension, res.Reason)
}

func TestValidate_MissingFile(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	_, err := v.Validate(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	require.Error(t, err)
	assert.True(t, reader.IsReadError(err))
}

func TestValidate_DirectoryIsNotAFile(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	_, err := v.Validate(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, reader.IsReadError(err))
}

func TestValidate_OversizedFile(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "pdf", MagicBytes: "25504446"},
	}, WithMaxFileSize(16))

	content := append(pdfMagic, make([]byte, 64)...)
	path := writeFile(t, t.TempDir(), "big.pdf", content)

	// Rejected on size before any byte comparison.
	_, err := v.Validate(context.Background(), path)
	require.Error(t, err)
	assert.True(t, reader.IsReadError(err))
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate_CompositeStructuralFailure(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "docx", MagicBytes: "504B0304"},
	})

	// A perfectly valid ZIP that is not a word document.
	path := writeZip(t, t.TempDir(), "fake.docx", map[string]string{
		"payload.txt": "not office content",
	})

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonBadStructure, res.Reason)
	assert.Contains(t, res.Message(), "structure")
}

func TestValidate_CompositeValid(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "docx", MagicBytes: "504B0304"},
	})

	path := writeZip(t, t.TempDir(), "real.docx", map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<document/>",
	})

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidate_PlainArchive(t *testing.T) {
	v, _ := newTestValidator(t, []store.Signature{
		{Extension: "zip", MagicBytes: "504B0304"},
	})

	// Any well-formed archive passes; no manifest requirement.
	path := writeZip(t, t.TempDir(), "bundle.zip", map[string]string{
		"anything.txt": "contents",
	})

	res, err := v.Validate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

// corruptSource returns a stored pattern that is not valid hex,
// simulating store corruption.
type corruptSource struct{}

func (corruptSource) GetSignatures(ctx context.Context, extension string) ([]store.Signature, error) {
	return []store.Signature{{Extension: extension, MagicBytes: "NOT-HEX"}}, nil
}

func (corruptSource) Close() error { return nil }

func TestValidate_CorruptStoredPattern(t *testing.T) {
	v := New(corruptSource{}, reader.NewSelector(nil))

	path := writeFile(t, t.TempDir(), "a.pdf", pdfMagic)

	_, err := v.Validate(context.Background(), path)
	require.Error(t, err)
	assert.True(t, IsBadSignature(err))
}

func TestClose_Idempotent(t *testing.T) {
	v, _ := newTestValidator(t, nil)

	require.NoError(t, v.Close())
	require.NoError(t, v.Close())
}
