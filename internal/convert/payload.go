package convert

import "io"

// PayloadStore holds the binary bodies of migrated documents, keyed by the
// SHA-256 checksum of the plaintext payload. The migrated-file row carries
// the checksum; the store carries the bytes.
type PayloadStore interface {
	// Put stores a payload under its checksum. Idempotent: storing the same
	// checksum again is safe. size is the number of bytes that will be read
	// from r.
	Put(checksum string, r io.Reader, size int64) error

	// Get retrieves a payload by checksum and writes it to w.
	Get(checksum string, w io.Writer) error

	// ValidateSetup verifies the backend is accessible and configured.
	ValidateSetup() error
}
