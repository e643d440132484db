package testutil

import (
	"doc2file/internal/convert"
	"doc2file/internal/encryption"
)

// NewTestEncryptor creates the deterministic header-prefixing encryptor.
func NewTestEncryptor() convert.Encryptor {
	return encryption.NewTestEncryptor()
}
