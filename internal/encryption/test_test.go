package encryption_test

import (
	"bytes"
	"testing"

	"doc2file/internal/config"
	"doc2file/internal/encryption"
)

func TestTestEncryptor(t *testing.T) {
	t.Run("round-trips through encrypt and decrypt", func(t *testing.T) {
		e := encryption.NewTestEncryptor()

		plaintext := []byte("some payload")
		var ciphertext bytes.Buffer
		if err := e.Encrypt(bytes.NewReader(plaintext), &ciphertext); err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if bytes.Equal(ciphertext.Bytes(), plaintext) {
			t.Error("ciphertext equals plaintext")
		}

		dec, err := e.Unlock("anything")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		var out bytes.Buffer
		if err := dec.Decrypt(bytes.NewReader(ciphertext.Bytes()), &out); err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if !bytes.Equal(out.Bytes(), plaintext) {
			t.Errorf("Decrypt() = %q, want %q", out.Bytes(), plaintext)
		}
	})

	t.Run("rejects data without the header", func(t *testing.T) {
		e := encryption.NewTestEncryptor()
		dec, err := e.Unlock("anything")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		var out bytes.Buffer
		if err := dec.Decrypt(bytes.NewReader([]byte("not encrypted data")), &out); err == nil {
			t.Fatal("Decrypt() expected error for missing header")
		}
	})
}

func TestNewEncryptorFromConfig(t *testing.T) {
	t.Run("none and empty types disable encryption", func(t *testing.T) {
		for _, typ := range []string{"", "none"} {
			enc, err := encryption.NewEncryptorFromConfig(config.EncryptionConfig{Type: typ})
			if err != nil {
				t.Fatalf("NewEncryptorFromConfig(%q) error = %v", typ, err)
			}
			if enc != nil {
				t.Errorf("NewEncryptorFromConfig(%q) = %T, want nil", typ, enc)
			}
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		if _, err := encryption.NewEncryptorFromConfig(config.EncryptionConfig{Type: "rot13"}); err == nil {
			t.Fatal("expected error for unknown encryption type")
		}
	})
}
