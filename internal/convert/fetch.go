package convert

import (
	"bytes"
	"fmt"
	"io"
)

// FetchPayload writes a migrated file's binary payload to w, decrypting it
// when the stored payload is encrypted. dec may be nil when the payload is
// known to be plaintext; fetching an encrypted payload without a decryption
// context is an error, as is fetching a link file.
func (s *ConversionService) FetchPayload(fileID string, w io.Writer, dec DecryptionContext) error {
	file, err := s.store.FindMigratedFileByID(fileID)
	if err != nil {
		return fmt.Errorf("finding migrated file: %w", err)
	}
	if file == nil {
		return fmt.Errorf("no migrated file with id %s", fileID)
	}
	if file.ExternalURL != "" {
		return fmt.Errorf("file %s is an external link (%s), it has no stored payload", fileID, file.ExternalURL)
	}
	if s.payloads == nil {
		return fmt.Errorf("no payload store configured")
	}

	if !file.Encrypted {
		if err := s.payloads.Get(file.Checksum, w); err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}
		return nil
	}

	if dec == nil {
		return fmt.Errorf("payload for file %s is encrypted: unlock the private key first", fileID)
	}
	var buf bytes.Buffer
	if err := s.payloads.Get(file.Checksum, &buf); err != nil {
		return fmt.Errorf("reading payload: %w", err)
	}
	if err := dec.Decrypt(&buf, w); err != nil {
		return fmt.Errorf("decrypting payload: %w", err)
	}
	return nil
}
