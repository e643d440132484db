package encryption_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"doc2file/internal/config"
	"doc2file/internal/encryption"
)

func newAgeEncryptor(t *testing.T) *encryption.AgeEncryptor {
	t.Helper()
	dir := t.TempDir()
	return encryption.NewAgeEncryptor(config.EncryptionConfig{
		Type:           "age",
		PublicKeyPath:  filepath.Join(dir, "keys", "doc2file.pub"),
		PrivateKeyPath: filepath.Join(dir, "keys", "doc2file.key"),
	})
}

func TestAgeEncryptor(t *testing.T) {
	t.Run("is not configured before setup", func(t *testing.T) {
		e := newAgeEncryptor(t)
		if e.IsConfigured() {
			t.Error("IsConfigured() = true before Setup()")
		}
	})

	t.Run("setup creates both key files", func(t *testing.T) {
		e := newAgeEncryptor(t)
		if err := e.Setup("passphrase"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if !e.IsConfigured() {
			t.Error("IsConfigured() = false after Setup()")
		}
	})

	t.Run("encrypt then unlock and decrypt round-trips", func(t *testing.T) {
		e := newAgeEncryptor(t)
		if err := e.Setup("passphrase"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}

		plaintext := []byte("confidential document body")
		var ciphertext bytes.Buffer
		if err := e.Encrypt(bytes.NewReader(plaintext), &ciphertext); err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		if bytes.Contains(ciphertext.Bytes(), plaintext) {
			t.Error("ciphertext contains the plaintext")
		}

		dec, err := e.Unlock("passphrase")
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

	t.Run("wrong passphrase cannot unlock", func(t *testing.T) {
		e := newAgeEncryptor(t)
		if err := e.Setup("passphrase"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		if _, err := e.Unlock("wrong"); err == nil {
			t.Fatal("Unlock() expected error for wrong passphrase")
		}
	})
}
