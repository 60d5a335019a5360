package validator

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/sigguard/sigguard/internal/reader"
)

// DigestAlgorithm selects the hash used for content fingerprinting.
type DigestAlgorithm string

const (
	DigestSHA256 DigestAlgorithm = "sha256"
	DigestSHA512 DigestAlgorithm = "sha512"
	DigestXXH64  DigestAlgorithm = "xxh64"
)

// digestChunkSize is the read buffer for streaming digests.
const digestChunkSize = 8192

func newDigestHash(algorithm DigestAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case DigestSHA256:
		return sha256.New(), nil
	case DigestSHA512:
		return sha512.New(), nil
	case DigestXXH64:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm: %q", algorithm)
	}
}

// ComputeDigest returns the SHA-256 digest of the file's full contents as
// a hex string. Independent of signature logic; used for integrity
// fingerprinting, not type validation.
func (v *Validator) ComputeDigest(path string) (string, error) {
	return v.ComputeDigestWith(path, DigestSHA256)
}

// ComputeDigestWith computes a content digest with the chosen algorithm,
// streaming the file in fixed-size chunks rather than loading it whole.
func (v *Validator) ComputeDigestWith(path string, algorithm DigestAlgorithm) (string, error) {
	h, err := newDigestHash(algorithm)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &reader.ReadError{Path: path, Message: "failed to hash file", Err: err}
	}
	defer f.Close()

	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", &reader.ReadError{Path: path, Message: "failed to hash file", Err: err}
	}

	digest := hex.EncodeToString(h.Sum(nil))
	v.logger.Debug("computed digest", "path", path, "algorithm", algorithm, "digest", digest)
	return digest, nil
}
