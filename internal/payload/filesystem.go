package payload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"doc2file/internal/convert"
)

// FileSystemStore keeps payloads as files named by checksum under a root
// directory. Writes go through a temp file and an atomic rename.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a payload store rooted at the given path.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create payload directory: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

// Put stores a payload under its checksum. If the payload already exists the
// reader is drained and verified against size, but nothing is rewritten.
func (s *FileSystemStore) Put(checksum string, r io.Reader, size int64) error {
	destPath := filepath.Join(s.root, checksum)

	if _, err := os.Stat(destPath); err == nil {
		written, err := io.Copy(io.Discard, r)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		if written != size {
			return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
		}
		return nil
	}

	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write payload: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	success = true
	return nil
}

// Get retrieves a payload by checksum and writes it to w.
func (s *FileSystemStore) Get(checksum string, w io.Writer) error {
	f, err := os.Open(filepath.Join(s.root, checksum))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("payload not found: %s", checksum)
		}
		return fmt.Errorf("failed to open payload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}
	return nil
}

// ValidateSetup verifies the root directory is accessible.
func (s *FileSystemStore) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("payload root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("payload root is not a directory: %s", s.root)
	}
	return nil
}

// Compile-time check that FileSystemStore implements convert.PayloadStore
var _ convert.PayloadStore = (*FileSystemStore)(nil)
