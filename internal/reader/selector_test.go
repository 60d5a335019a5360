package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector_OfficeBeforeArchive(t *testing.T) {
	s := NewSelector(nil)

	// Compound documents are valid ZIP archives; they must still get the
	// manifest-checking strategy.
	for _, ext := range []string{"docx", "xlsx", "pptx"} {
		r := s.Select(ext)
		_, isOffice := r.(*OfficeReader)
		assert.True(t, isOffice, "Select(%q) should pick the office reader, got %T", ext, r)
	}
}

func TestSelector_Archive(t *testing.T) {
	s := NewSelector(nil)

	r := s.Select("zip")
	_, isArchive := r.(*ArchiveReader)
	assert.True(t, isArchive, "Select(zip) should pick the archive reader, got %T", r)
}

func TestSelector_Flat(t *testing.T) {
	s := NewSelector(nil)

	r := s.Select("pdf")
	_, isFlat := r.(*FlatReader)
	assert.True(t, isFlat, "Select(pdf) should pick the flat reader, got %T", r)
}

func TestSelector_FallbackForUnknownExtension(t *testing.T) {
	s := NewSelector(nil)

	r := s.Select("unknownext")
	_, isFlat := r.(*FlatReader)
	assert.True(t, isFlat, "Select(unknownext) should fall back to the flat reader, got %T", r)
}
