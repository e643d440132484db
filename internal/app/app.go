package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"doc2file/internal/config"
	"doc2file/internal/convert"
	"doc2file/internal/database"
	"doc2file/internal/directory"
	"doc2file/internal/encryption"
	"doc2file/internal/model"
	"doc2file/internal/payload"
)

// App is the application layer between the CLI and ConversionService.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw CLI arguments, and manages the store lifecycle on Close.
type App struct {
	cfg       *config.Config
	store     *database.SQLiteStore
	directory convert.DirectoryService
	payloads  convert.PayloadStore
	encryptor convert.Encryptor
	service   *convert.ConversionService
	op        *ConversionOp
	logFile   *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "RegisterFolders",
// "MigrateDocuments"); parameters records its arguments for the audit row.
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation, parameters string) (*App, error) {
	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	if err := store.CheckMigrations(); err != nil {
		store.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	dir, err := directory.NewDirectoryFromConfig(cfg.Directory)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating directory service: %w", err)
	}

	payloads, err := payload.NewPayloadStoreFromConfig(cfg.Payload)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating payload store: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	permissions := convert.PermissionMap{
		ReadOnlyID:  cfg.Permissions.ReadOnlyID,
		ReadWriteID: cfg.Permissions.ReadWriteID,
	}

	svc := convert.NewConversionService(store, dir, payloads, enc, permissions,
		&slogAdapter{l: logger}, convert.RealClock{}, convert.UUIDGenerator{})
	op := NewConversionOp(operation, parameters)

	return &App{
		cfg:       cfg,
		store:     store,
		directory: dir,
		payloads:  payloads,
		encryptor: enc,
		service:   svc,
		op:        op,
		logFile:   logFile,
	}, nil
}

// persistOperation saves the conversion operation to the database, giving it
// an auto-increment ID. This should only be called for store-mutating commands.
func (a *App) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	dbOp, err := a.store.CreateConversionOperation(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting conversion operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// MarkFailed records that the operation ended in error. Close writes the
// final status to the audit row.
func (a *App) MarkFailed() {
	a.op.Status = "error"
}

// RegisterFolders queues the named folders for conversion. With no names,
// every legacy folder is registered.
func (a *App) RegisterFolders(devNames []string) (*convert.RegisterReport, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	var folders []*model.Folder
	if len(devNames) == 0 {
		all, err := a.store.ListFolders()
		if err != nil {
			return nil, fmt.Errorf("listing folders: %w", err)
		}
		folders = all
	} else {
		byName, err := a.store.FindFoldersByDeveloperNames(devNames)
		if err != nil {
			return nil, fmt.Errorf("resolving folders: %w", err)
		}
		var missing []string
		for _, name := range devNames {
			f, ok := byName[name]
			if !ok {
				missing = append(missing, name)
				continue
			}
			folders = append(folders, f)
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return nil, fmt.Errorf("unknown folders: %v", missing)
		}
	}

	return a.service.RegisterFolders(folders)
}

// ProvisionLibraries provisions the group/library pair for every record in
// the conversion ledger.
func (a *App) ProvisionLibraries() (*convert.ProvisionReport, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	records, err := a.store.ListTrackingRecords()
	if err != nil {
		return nil, fmt.Errorf("reading conversion ledger: %w", err)
	}
	return a.service.ProvisionLibraries(records)
}

// MigrationSummary aggregates per-document outcomes across migration batches.
type MigrationSummary struct {
	Processed       int
	Migrated        int
	AlreadyMigrated int
	Failed          int
	Failures        []*convert.MigrationResult
}

// MigrateDocuments walks all legacy documents in batches of batchSize and
// migrates each batch. batchSize <= 0 falls back to the configured size.
func (a *App) MigrateDocuments(batchSize int) (*MigrationSummary, error) {
	if err := a.payloads.ValidateSetup(); err != nil {
		return nil, fmt.Errorf("payload store not usable: %w", err)
	}
	if err := a.persistOperation(); err != nil {
		return nil, err
	}

	if batchSize <= 0 {
		batchSize = a.cfg.Migration.BatchSize
	}
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}

	summary := &MigrationSummary{}
	offset := 0
	for {
		docs, err := a.store.ListDocuments(batchSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		if len(docs) == 0 {
			break
		}

		results, err := a.service.MigrateDocuments(docs)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			summary.Processed++
			switch r.Outcome {
			case convert.OutcomeMigrated:
				summary.Migrated++
			case convert.OutcomeAlreadyMigrated:
				summary.AlreadyMigrated++
			case convert.OutcomeFailed:
				summary.Failed++
				summary.Failures = append(summary.Failures, r)
			}
		}

		offset += len(docs)
		if len(docs) < batchSize {
			break
		}
	}
	return summary, nil
}

// GetStatus returns the per-folder conversion progress.
func (a *App) GetStatus() ([]*convert.FolderStatus, error) {
	return a.service.GetStatus()
}

// ListLedger returns every record in the conversion ledger.
func (a *App) ListLedger() ([]*model.TrackingRecord, error) {
	return a.store.ListTrackingRecords()
}

// RemoveTrackingRecord deletes a folder's ledger row so the folder can be
// registered again.
func (a *App) RemoveTrackingRecord(folderID string) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	return a.store.DeleteTrackingRecord(folderID)
}

// GetHistory returns the most recent conversion operations.
func (a *App) GetHistory(limit int) ([]*model.ConversionOperation, error) {
	return a.store.ListConversionOperations(limit)
}

// FindMigratedFile looks up a migrated file by id, or nil if absent.
func (a *App) FindMigratedFile(id string) (*model.MigratedFile, error) {
	return a.store.FindMigratedFileByID(id)
}

// FetchPayload writes a migrated file's payload to w. dec is required for
// encrypted payloads; get one from Unlock.
func (a *App) FetchPayload(fileID string, w io.Writer, dec convert.DecryptionContext) error {
	return a.service.FetchPayload(fileID, w, dec)
}

// Unlock decrypts the private key with the passphrase for this session.
func (a *App) Unlock(passphrase string) (convert.DecryptionContext, error) {
	if a.encryptor == nil {
		return nil, fmt.Errorf("encryption is not enabled in config")
	}
	return a.encryptor.Unlock(passphrase)
}

// SetupKeys performs one-time encryption key generation.
func (a *App) SetupKeys(passphrase string) error {
	if a.encryptor == nil {
		return fmt.Errorf("encryption is not enabled in config")
	}
	if a.encryptor.IsConfigured() {
		return fmt.Errorf("encryption keys already exist")
	}
	return a.encryptor.Setup(passphrase)
}

// ImportLegacy loads legacy folders and documents into the store. This is
// the intake path for exports produced by the legacy system.
func (a *App) ImportLegacy(folders []*model.Folder, docs []*model.Document) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	if len(folders) > 0 {
		if err := a.store.SeedLegacyFolders(folders); err != nil {
			return fmt.Errorf("importing folders: %w", err)
		}
	}
	if len(docs) > 0 {
		if err := a.store.SeedLegacyDocuments(docs); err != nil {
			return fmt.Errorf("importing documents: %w", err)
		}
	}
	return nil
}

// Close finalizes the operation and closes all resources. For persisted
// operations the audit row gets its final status and finish time.
func (a *App) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.store.FinishConversionOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing conversion operation: %w", err)
		}
	}

	if err := a.store.Close(); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("closing store: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
