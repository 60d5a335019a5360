// Package sigdata loads and exports signature sets as JSON, and carries
// the default set that seeds an empty store on first use.
package sigdata

import (
	"context"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sigguard/sigguard/internal/store"
)

//go:embed signatures.json
var defaultSignaturesJSON []byte

// Registry is the slice of the store the loader writes through.
type Registry interface {
	AddSignature(ctx context.Context, sig store.Signature) error
	Count(ctx context.Context) (int, error)
	AllExtensions(ctx context.Context) ([]string, error)
	GetSignatures(ctx context.Context, extension string) ([]store.Signature, error)
}

// Record is one signature entry in the interchange format.
type Record struct {
	Extension   string `json:"extension"`
	MagicBytes  string `json:"magic_bytes"`
	Offset      int64  `json:"offset,omitempty"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mime_type,omitempty"`
}

// Set is a serialized collection of signature records.
type Set struct {
	Signatures []Record `json:"signatures"`
}

// Stats summarizes one load operation.
type Stats struct {
	Loaded  int
	Skipped int
}

// Validate checks the structural requirements of a set: every record must
// carry an extension and a hex-decodable pattern.
func (s *Set) Validate() error {
	for i, rec := range s.Signatures {
		if rec.Extension == "" {
			return fmt.Errorf("signature %d: missing extension", i)
		}
		if rec.MagicBytes == "" {
			return fmt.Errorf("signature %d: missing magic_bytes", i)
		}
		if _, err := hex.DecodeString(store.NormalizePattern(rec.MagicBytes)); err != nil {
			return fmt.Errorf("signature %d: magic_bytes must be hex: %q", i, rec.MagicBytes)
		}
	}
	return nil
}

// ParseSet decodes and validates a signature set from JSON.
func ParseSet(data []byte) (*Set, error) {
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse signature set: %w", err)
	}
	if set.Signatures == nil {
		return nil, fmt.Errorf("parse signature set: missing 'signatures' array")
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signature set: %w", err)
	}
	return &set, nil
}

// LoadSet registers every record of a set. Duplicates are a benign skip
// condition, not a failure; anything else aborts the load.
func LoadSet(ctx context.Context, set *Set, reg Registry, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var stats Stats
	for _, rec := range set.Signatures {
		err := reg.AddSignature(ctx, store.Signature{
			Extension:   rec.Extension,
			MagicBytes:  rec.MagicBytes,
			Offset:      rec.Offset,
			Description: rec.Description,
			MIMEType:    rec.MIMEType,
		})
		switch {
		case err == nil:
			stats.Loaded++
		case store.IsDuplicate(err):
			logger.Debug("skipped duplicate signature", "extension", rec.Extension, "magic_bytes", rec.MagicBytes)
			stats.Skipped++
		default:
			return stats, fmt.Errorf("load signature for '.%s': %w", rec.Extension, err)
		}
	}

	logger.Info("signature set loaded", "loaded", stats.Loaded, "skipped", stats.Skipped)
	return stats, nil
}

// LoadFile loads a signature set from a JSON file.
func LoadFile(ctx context.Context, path string, reg Registry, logger *slog.Logger) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read signature file %q: %w", path, err)
	}
	set, err := ParseSet(data)
	if err != nil {
		return Stats{}, fmt.Errorf("signature file %q: %w", path, err)
	}
	return LoadSet(ctx, set, reg, logger)
}

// SeedDefaults loads the embedded default signature set into an empty
// store. A store that already holds signatures is left untouched.
func SeedDefaults(ctx context.Context, reg Registry, logger *slog.Logger) (Stats, error) {
	count, err := reg.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	if count > 0 {
		return Stats{}, nil
	}

	set, err := ParseSet(defaultSignaturesJSON)
	if err != nil {
		return Stats{}, fmt.Errorf("embedded signature set: %w", err)
	}
	return LoadSet(ctx, set, reg, logger)
}

// Export serializes the full store contents to the interchange format.
func Export(ctx context.Context, reg Registry, w io.Writer) error {
	extensions, err := reg.AllExtensions(ctx)
	if err != nil {
		return err
	}

	set := Set{Signatures: []Record{}}
	for _, ext := range extensions {
		sigs, err := reg.GetSignatures(ctx, ext)
		if err != nil {
			return err
		}
		for _, sig := range sigs {
			set.Signatures = append(set.Signatures, Record{
				Extension:   sig.Extension,
				MagicBytes:  sig.MagicBytes,
				Offset:      sig.Offset,
				Description: sig.Description,
				MIMEType:    sig.MIMEType,
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode signature set: %w", err)
	}
	return nil
}
