package convert_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"doc2file/internal/convert"
	"doc2file/internal/database"
	"doc2file/internal/model"
	"doc2file/internal/testutil"
)

func TestConversionService_MigrateDocuments(t *testing.T) {
	t.Run("empty document set is a no-op", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, nil)

		results, err := svc.MigrateDocuments(nil)
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}
		if len(results) != 0 {
			t.Errorf("results = %d, want 0", len(results))
		}
	})

	t.Run("URL document becomes an external link file", func(t *testing.T) {
		svc, store, dir, payloads := newTestService(t, nil)
		f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
		dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		doc := urlDocument("d-1", "f-1", "handbook", "https://intranet.example.com/handbook")
		results, err := svc.MigrateDocuments([]*model.Document{doc})
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}
		if len(results) != 1 || results[0].Outcome != convert.OutcomeMigrated {
			t.Fatalf("results = %+v, want one migrated", results)
		}

		file, err := store.FindMigratedFileByID(results[0].FileID)
		if err != nil {
			t.Fatalf("FindMigratedFileByID() error = %v", err)
		}
		if file.ExternalURL != "https://intranet.example.com/handbook" {
			t.Errorf("ExternalURL = %q, want source URL", file.ExternalURL)
		}
		if file.PathOnClient != "" || file.Checksum != "" {
			t.Errorf("link file has payload fields set: path=%q checksum=%q", file.PathOnClient, file.Checksum)
		}
		if payloads.Len() != 0 {
			t.Errorf("payload store has %d entries, want 0 for a link file", payloads.Len())
		}
	})

	t.Run("binary document gets a payload, client path and checksum", func(t *testing.T) {
		svc, store, dir, payloads := newTestService(t, nil)
		f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
		dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		body := []byte("%PDF-1.4 fake pdf body")
		doc := binaryDocument("d-1", "f-1", "handbook", "PDF", body)

		results, err := svc.MigrateDocuments([]*model.Document{doc})
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}
		if results[0].Outcome != convert.OutcomeMigrated {
			t.Fatalf("outcome = %q, want migrated (%s)", results[0].Outcome, results[0].Reason)
		}

		file, err := store.FindMigratedFileByID(results[0].FileID)
		if err != nil {
			t.Fatalf("FindMigratedFileByID() error = %v", err)
		}
		if file.PathOnClient != "/handbook.PDF" {
			t.Errorf("PathOnClient = %q, want %q", file.PathOnClient, "/handbook.PDF")
		}
		sum := sha256.Sum256(body)
		if file.Checksum != hex.EncodeToString(sum[:]) {
			t.Errorf("Checksum = %q, want SHA-256 of the body", file.Checksum)
		}
		if file.Size != int64(len(body)) {
			t.Errorf("Size = %d, want %d", file.Size, len(body))
		}
		if file.Encrypted {
			t.Error("Encrypted = true, want false without an encryptor")
		}

		var stored bytes.Buffer
		if err := payloads.Get(file.Checksum, &stored); err != nil {
			t.Fatalf("payload Get() error = %v", err)
		}
		if !bytes.Equal(stored.Bytes(), body) {
			t.Error("stored payload differs from document body")
		}
	})

	t.Run("audit fields are copied verbatim", func(t *testing.T) {
		svc, store, dir, _ := newTestService(t, nil)
		f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
		dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		doc := binaryDocument("d-1", "f-1", "handbook", "PDF", []byte("body"))
		results, err := svc.MigrateDocuments([]*model.Document{doc})
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}

		file, err := store.FindMigratedFileByID(results[0].FileID)
		if err != nil {
			t.Fatalf("FindMigratedFileByID() error = %v", err)
		}
		if file.Title != doc.Name {
			t.Errorf("Title = %q, want %q", file.Title, doc.Name)
		}
		if file.Description != doc.Description || file.Keywords != doc.Keywords {
			t.Errorf("Description/Keywords not copied verbatim")
		}
		if file.OwnerID != doc.AuthorID {
			t.Errorf("OwnerID = %q, want author %q", file.OwnerID, doc.AuthorID)
		}
		if file.CreatedBy != doc.CreatedBy || !file.CreatedAt.Equal(doc.CreatedAt) {
			t.Errorf("created audit = %q/%v, want %q/%v", file.CreatedBy, file.CreatedAt, doc.CreatedBy, doc.CreatedAt)
		}
		if file.ModifiedBy != doc.ModifiedBy || !file.ModifiedAt.Equal(doc.ModifiedAt) {
			t.Errorf("modified audit = %q/%v, want %q/%v", file.ModifiedBy, file.ModifiedAt, doc.ModifiedBy, doc.ModifiedAt)
		}
		if file.SourceDocumentID != "d-1" || file.SourceFolderID != "f-1" {
			t.Errorf("back-references = %q/%q, want d-1/f-1", file.SourceDocumentID, file.SourceFolderID)
		}
	})

	t.Run("re-running reports already migrated and stores nothing new", func(t *testing.T) {
		svc, store, dir, _ := newTestService(t, nil)
		f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
		dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		doc := urlDocument("d-1", "f-1", "handbook", "https://example.com")
		if _, err := svc.MigrateDocuments([]*model.Document{doc}); err != nil {
			t.Fatalf("first MigrateDocuments() error = %v", err)
		}

		results, err := svc.MigrateDocuments([]*model.Document{doc})
		if err != nil {
			t.Fatalf("second MigrateDocuments() error = %v", err)
		}
		if results[0].Outcome != convert.OutcomeAlreadyMigrated {
			t.Errorf("outcome = %q, want already_migrated", results[0].Outcome)
		}

		count, err := store.CountMigratedByFolder("f-1")
		if err != nil {
			t.Fatalf("CountMigratedByFolder() error = %v", err)
		}
		if count != 1 {
			t.Errorf("migrated files = %d, want 1", count)
		}
	})

	t.Run("document without a provisioned library fails without aborting the batch", func(t *testing.T) {
		svc, store, dir, _ := newTestService(t, nil)
		f := seedFolder(t, store, "f-1", "alpha", "Alpha")
		seedFolder(t, store, "f-2", "beta", "Beta") // never registered or provisioned
		dir.Add(snapshot("alpha", "Alpha", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		docs := []*model.Document{
			urlDocument("d-1", "f-2", "orphan", "https://example.com/orphan"),
			urlDocument("d-2", "f-1", "ok", "https://example.com/ok"),
		}
		results, err := svc.MigrateDocuments(docs)
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("results = %d, want 2", len(results))
		}
		if results[0].Outcome != convert.OutcomeFailed || results[0].Reason == "" {
			t.Errorf("orphan result = %+v, want failed with reason", results[0])
		}
		if results[1].Outcome != convert.OutcomeMigrated {
			t.Errorf("ok result = %+v, want migrated", results[1])
		}
	})

	t.Run("unknown parent folder fails individually", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, nil)

		docs := []*model.Document{urlDocument("d-1", "f-missing", "ghost", "https://example.com")}
		results, err := svc.MigrateDocuments(docs)
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}
		if results[0].Outcome != convert.OutcomeFailed {
			t.Errorf("outcome = %q, want failed", results[0].Outcome)
		}
	})

	t.Run("configured encryptor encrypts the stored payload", func(t *testing.T) {
		enc := testutil.NewTestEncryptor()
		svc, store, dir, payloads := newTestService(t, enc)
		f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
		dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		body := []byte("secret pdf body")
		doc := binaryDocument("d-1", "f-1", "secret", "PDF", body)
		results, err := svc.MigrateDocuments([]*model.Document{doc})
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}

		file, err := store.FindMigratedFileByID(results[0].FileID)
		if err != nil {
			t.Fatalf("FindMigratedFileByID() error = %v", err)
		}
		if !file.Encrypted {
			t.Fatal("Encrypted = false, want true")
		}
		// Checksum is always of the plaintext.
		sum := sha256.Sum256(body)
		if file.Checksum != hex.EncodeToString(sum[:]) {
			t.Errorf("Checksum = %q, want SHA-256 of the plaintext", file.Checksum)
		}
		// The stored bytes are ciphertext (larger than the plaintext here).
		var stored bytes.Buffer
		if err := payloads.Get(file.Checksum, &stored); err != nil {
			t.Fatalf("payload Get() error = %v", err)
		}
		if bytes.Equal(stored.Bytes(), body) {
			t.Error("stored payload equals plaintext, want ciphertext")
		}
		if file.Size != int64(stored.Len()) {
			t.Errorf("Size = %d, want stored size %d", file.Size, stored.Len())
		}
	})
}

func TestConversionService_FetchPayload(t *testing.T) {
	t.Run("round-trips a plaintext payload", func(t *testing.T) {
		svc, store, dir, _ := newTestService(t, nil)
		fileID, body := seedMigrated(t, svc, store, dir)

		var out bytes.Buffer
		if err := svc.FetchPayload(fileID, &out, nil); err != nil {
			t.Fatalf("FetchPayload() error = %v", err)
		}
		if !bytes.Equal(out.Bytes(), body) {
			t.Errorf("fetched %q, want %q", out.Bytes(), body)
		}
	})

	t.Run("round-trips an encrypted payload with a decryption context", func(t *testing.T) {
		enc := testutil.NewTestEncryptor()
		svc, store, dir, _ := newTestService(t, enc)
		fileID, body := seedMigrated(t, svc, store, dir)

		dec, err := enc.Unlock("passphrase")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}

		var out bytes.Buffer
		if err := svc.FetchPayload(fileID, &out, dec); err != nil {
			t.Fatalf("FetchPayload() error = %v", err)
		}
		if !bytes.Equal(out.Bytes(), body) {
			t.Errorf("fetched %q, want %q", out.Bytes(), body)
		}
	})

	t.Run("encrypted payload without a context is an error", func(t *testing.T) {
		enc := testutil.NewTestEncryptor()
		svc, store, dir, _ := newTestService(t, enc)
		fileID, _ := seedMigrated(t, svc, store, dir)

		var out bytes.Buffer
		if err := svc.FetchPayload(fileID, &out, nil); err == nil {
			t.Fatal("FetchPayload() expected error without decryption context")
		}
	})

	t.Run("unknown file id is an error", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, nil)

		var out bytes.Buffer
		if err := svc.FetchPayload("nope", &out, nil); err == nil {
			t.Fatal("FetchPayload() expected error for unknown id")
		}
	})

	t.Run("link file has no payload to fetch", func(t *testing.T) {
		svc, store, dir, _ := newTestService(t, nil)
		f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
		dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
		registerAndProvision(t, svc, f)

		doc := urlDocument("d-1", "f-1", "handbook", "https://example.com")
		results, err := svc.MigrateDocuments([]*model.Document{doc})
		if err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}

		var out bytes.Buffer
		if err := svc.FetchPayload(results[0].FileID, &out, nil); err == nil {
			t.Fatal("FetchPayload() expected error for a link file")
		}
	})
}

// seedMigrated registers and provisions one folder, migrates one binary
// document into it, and returns the migrated file id and the plaintext body.
func seedMigrated(t *testing.T, svc *convert.ConversionService, store *database.SQLiteStore, dir *testutil.StubDirectory) (string, []byte) {
	t.Helper()

	f := seedFolder(t, store, "f-1", "hr_policies", "HR Policies")
	dir.Add(snapshot("hr_policies", "HR Policies", nil, model.AccessReadOnly))
	registerAndProvision(t, svc, f)

	body := []byte("payload body for fetch tests")
	doc := binaryDocument("d-1", "f-1", "handbook", "PDF", body)
	results, err := svc.MigrateDocuments([]*model.Document{doc})
	if err != nil {
		t.Fatalf("MigrateDocuments() error = %v", err)
	}
	if results[0].Outcome != convert.OutcomeMigrated {
		t.Fatalf("seed outcome = %q (%s), want migrated", results[0].Outcome, results[0].Reason)
	}
	return results[0].FileID, body
}
