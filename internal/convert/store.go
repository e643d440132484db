package convert

import "doc2file/internal/model"

// Store provides an interface for the relational store holding both the
// legacy records and the conversion output. Batch create methods must be
// all-or-nothing: a failure leaves nothing of the batch behind.
type Store interface {
	// Legacy inputs (read-only)

	// ListFolders returns every legacy folder.
	ListFolders() ([]*model.Folder, error)

	// FindFoldersByDeveloperNames returns folders keyed by developer-name.
	FindFoldersByDeveloperNames(devNames []string) (map[string]*model.Folder, error)

	// FindFoldersByIDs returns folders keyed by id. Unknown ids are absent.
	FindFoldersByIDs(ids []string) (map[string]*model.Folder, error)

	// ListDocuments returns legacy documents ordered by id, for chunked
	// migration. limit <= 0 means no limit.
	ListDocuments(limit, offset int) ([]*model.Document, error)

	// CountDocumentsByFolder returns the number of legacy documents in a folder.
	CountDocumentsByFolder(folderID string) (int, error)

	// Conversion ledger

	// FindTrackingByFolderIDs returns tracking records for the given folder ids.
	FindTrackingByFolderIDs(folderIDs []string) ([]*model.TrackingRecord, error)

	// ListTrackingRecords returns the whole ledger.
	ListTrackingRecords() ([]*model.TrackingRecord, error)

	// CreateTrackingRecords inserts records and their group relation rows in
	// one transaction. Fails (and rolls back) if any record's folder id is
	// already tracked — the ledger has a uniqueness guarantee on folder id.
	CreateTrackingRecords(records []*model.TrackingRecord) error

	// DeleteTrackingRecord removes a folder's ledger row, re-enabling
	// registration for it. Returns an error if the folder is not tracked.
	DeleteTrackingRecord(folderID string) error

	// Provisioned groups and libraries

	// FindGroupsBySlugs returns access groups keyed by developer-name.
	FindGroupsBySlugs(slugs []string) (map[string]*model.AccessGroup, error)

	// FindLibrariesBySlugs returns libraries keyed by developer-name.
	FindLibrariesBySlugs(slugs []string) (map[string]*model.Library, error)

	// CreateGroups inserts access groups in one transaction.
	CreateGroups(groups []*model.AccessGroup) error

	// CreateLibraries inserts libraries in one transaction.
	CreateLibraries(libraries []*model.Library) error

	// AddGroupMembers inserts memberships, ignoring rows that already exist.
	// Returns the number of rows actually inserted.
	AddGroupMembers(members []*model.GroupMember) (int, error)

	// AddLibraryGrants inserts grants, ignoring rows that already exist.
	// Returns the number of rows actually inserted.
	AddLibraryGrants(grants []*model.LibraryGrant) (int, error)

	// Migrated files

	// FindMigratedSourceIDs returns the subset of docIDs that already have a
	// migrated file published in one of the given libraries, via the
	// source-document back-reference.
	FindMigratedSourceIDs(docIDs, libraryIDs []string) (map[string]bool, error)

	// CreateMigratedFiles inserts files in one transaction.
	CreateMigratedFiles(files []*model.MigratedFile) error

	// FindMigratedFileByID returns a migrated file, or nil if absent.
	FindMigratedFileByID(id string) (*model.MigratedFile, error)

	// CountMigratedByFolder returns the number of migrated files whose
	// source-folder back-reference is the given folder.
	CountMigratedByFolder(folderID string) (int, error)

	// Operation audit

	// CreateConversionOperation records the start of a mutating CLI run.
	CreateConversionOperation(operation, parameters string) (*model.ConversionOperation, error)

	// FinishConversionOperation records the outcome of a run.
	FinishConversionOperation(id int64, status string) error

	// ListConversionOperations returns the most recent operations, newest first.
	ListConversionOperations(limit int) ([]*model.ConversionOperation, error)

	// Close closes the store connection.
	Close() error
}
