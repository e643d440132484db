package convert

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"doc2file/internal/model"
)

// MigrationOutcome classifies what happened to one document in a batch.
type MigrationOutcome string

const (
	OutcomeMigrated        MigrationOutcome = "migrated"
	OutcomeAlreadyMigrated MigrationOutcome = "already_migrated"
	OutcomeFailed          MigrationOutcome = "failed"
)

// MigrationResult is the per-document outcome of a MigrateDocuments call.
// FileID is set for migrated documents; Reason is set for failed ones.
type MigrationResult struct {
	DocumentID string
	Outcome    MigrationOutcome
	FileID     string
	Reason     string
}

// MigrateDocuments converts legacy documents into files published in their
// folders' provisioned libraries. Documents already migrated (found via the
// source-document back-reference, scoped to the resolved libraries) are
// reported as AlreadyMigrated. A document whose folder has no provisioned
// library fails individually without aborting the rest of the batch.
//
// All constructed files are persisted in one all-or-nothing batch insert;
// a store failure aborts the whole call.
func (s *ConversionService) MigrateDocuments(docs []*model.Document) ([]*MigrationResult, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	docIDs := make([]string, 0, len(docs))
	folderIDSet := make(map[string]bool)
	var folderIDs []string
	for _, d := range docs {
		docIDs = append(docIDs, d.ID)
		if !folderIDSet[d.FolderID] {
			folderIDSet[d.FolderID] = true
			folderIDs = append(folderIDs, d.FolderID)
		}
	}

	folders, err := s.store.FindFoldersByIDs(folderIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving parent folders: %w", err)
	}

	slugSet := make(map[string]bool)
	var slugs []string
	for _, f := range folders {
		slug := LibrarySlug(f.DeveloperName)
		if !slugSet[slug] {
			slugSet[slug] = true
			slugs = append(slugs, slug)
		}
	}
	libraries, err := s.store.FindLibrariesBySlugs(slugs)
	if err != nil {
		return nil, fmt.Errorf("resolving libraries: %w", err)
	}
	libraryIDs := make([]string, 0, len(libraries))
	for _, lib := range libraries {
		libraryIDs = append(libraryIDs, lib.ID)
	}

	migrated, err := s.store.FindMigratedSourceIDs(docIDs, libraryIDs)
	if err != nil {
		return nil, fmt.Errorf("checking for migrated documents: %w", err)
	}

	results := make([]*MigrationResult, 0, len(docs))
	var files []*model.MigratedFile
	for _, doc := range docs {
		if migrated[doc.ID] {
			s.logger.Debug("document already migrated", "document", doc.ID)
			results = append(results, &MigrationResult{
				DocumentID: doc.ID,
				Outcome:    OutcomeAlreadyMigrated,
			})
			continue
		}

		folder := folders[doc.FolderID]
		if folder == nil {
			results = append(results, s.failDocument(doc, "parent folder not found"))
			continue
		}
		library := libraries[LibrarySlug(folder.DeveloperName)]
		if library == nil {
			results = append(results, s.failDocument(doc, fmt.Sprintf("no provisioned library for folder %s", folder.DeveloperName)))
			continue
		}

		file, err := s.buildFile(doc, library)
		if err != nil {
			results = append(results, s.failDocument(doc, err.Error()))
			continue
		}
		files = append(files, file)
		results = append(results, &MigrationResult{
			DocumentID: doc.ID,
			Outcome:    OutcomeMigrated,
			FileID:     file.ID,
		})
	}

	if len(files) > 0 {
		if err := s.store.CreateMigratedFiles(files); err != nil {
			return nil, fmt.Errorf("persisting migrated files: %w", err)
		}
	}

	s.logger.Info("migration batch complete",
		"migrated", len(files),
		"skipped", len(migrated),
		"failed", len(results)-len(files)-countAlreadyMigrated(results))
	return results, nil
}

// buildFile constructs the migrated file for one document, storing the
// binary payload (encrypted when an encryptor is configured) in the payload
// store. Title, description, keywords and the audit fields are copied
// verbatim from the source; only the payload-vs-link branch differs.
func (s *ConversionService) buildFile(doc *model.Document, library *model.Library) (*model.MigratedFile, error) {
	file := &model.MigratedFile{
		ID:               s.idgen.New(),
		LibraryID:        library.ID,
		Title:            doc.Name,
		Description:      doc.Description,
		Keywords:         doc.Keywords,
		ContentType:      doc.Type,
		OwnerID:          doc.AuthorID,
		CreatedBy:        doc.CreatedBy,
		CreatedAt:        doc.CreatedAt,
		ModifiedBy:       doc.ModifiedBy,
		ModifiedAt:       doc.ModifiedAt,
		SourceDocumentID: doc.ID,
		SourceFolderID:   doc.FolderID,
	}

	if doc.Type == model.DocumentTypeURL {
		file.ExternalURL = doc.URL
		return file, nil
	}

	file.PathOnClient = "/" + doc.DeveloperName + "." + doc.Type

	sum := sha256.Sum256(doc.Body)
	file.Checksum = hex.EncodeToString(sum[:])

	payload := doc.Body
	if s.encryptor != nil && s.encryptor.IsConfigured() {
		var buf bytes.Buffer
		if err := s.encryptor.Encrypt(bytes.NewReader(doc.Body), &buf); err != nil {
			return nil, fmt.Errorf("encrypting payload: %w", err)
		}
		payload = buf.Bytes()
		file.Encrypted = true
	}
	file.Size = int64(len(payload))

	if s.payloads == nil {
		return nil, fmt.Errorf("no payload store configured for binary document %s", doc.ID)
	}
	if err := s.payloads.Put(file.Checksum, bytes.NewReader(payload), file.Size); err != nil {
		return nil, fmt.Errorf("storing payload: %w", err)
	}
	return file, nil
}

func (s *ConversionService) failDocument(doc *model.Document, reason string) *MigrationResult {
	s.logger.Warn("document migration failed", "document", doc.ID, "reason", reason)
	return &MigrationResult{
		DocumentID: doc.ID,
		Outcome:    OutcomeFailed,
		Reason:     reason,
	}
}

func countAlreadyMigrated(results []*MigrationResult) int {
	n := 0
	for _, r := range results {
		if r.Outcome == OutcomeAlreadyMigrated {
			n++
		}
	}
	return n
}
