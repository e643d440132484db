package encryption

import (
	"fmt"

	"doc2file/internal/config"
	"doc2file/internal/convert"
)

// NewEncryptorFromConfig creates an Encryptor based on the configuration
// type. Encryption is opt-in: an empty or "none" type returns a nil
// Encryptor, and migrated payloads are stored in plaintext.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (convert.Encryptor, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "age":
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}
