package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"doc2file/internal/convert"
	"doc2file/internal/database/migrations"
	"doc2file/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the convert.Store interface using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens a SQLite store at path.
// path can be a file path or ":memory:" for an in-memory store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing connection. The caller is
// responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// this store relies on. Exported for tools and tests.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite defaults foreign keys to OFF for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(values []string) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

// Legacy inputs

func (s *SQLiteStore) ListFolders() ([]*model.Folder, error) {
	rows, err := s.db.Query(`SELECT id, developer_name, name FROM legacy_folders ORDER BY developer_name`)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var folders []*model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.DeveloperName, &f.Name); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders = append(folders, &f)
	}
	return folders, rows.Err()
}

func (s *SQLiteStore) FindFoldersByDeveloperNames(devNames []string) (map[string]*model.Folder, error) {
	folders := make(map[string]*model.Folder, len(devNames))
	if len(devNames) == 0 {
		return folders, nil
	}

	query := `SELECT id, developer_name, name FROM legacy_folders WHERE developer_name IN (` + placeholders(len(devNames)) + `)`
	rows, err := s.db.Query(query, stringArgs(devNames)...)
	if err != nil {
		return nil, fmt.Errorf("finding folders by developer name: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.DeveloperName, &f.Name); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders[f.DeveloperName] = &f
	}
	return folders, rows.Err()
}

func (s *SQLiteStore) FindFoldersByIDs(ids []string) (map[string]*model.Folder, error) {
	folders := make(map[string]*model.Folder, len(ids))
	if len(ids) == 0 {
		return folders, nil
	}

	query := `SELECT id, developer_name, name FROM legacy_folders WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := s.db.Query(query, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("finding folders by id: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.DeveloperName, &f.Name); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		folders[f.ID] = &f
	}
	return folders, rows.Err()
}

const documentColumns = `id, folder_id, developer_name, type, name, description, keywords, url, body,
	author_id, created_by, created_at, modified_by, modified_at`

func (s *SQLiteStore) ListDocuments(limit, offset int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unlimited
	}
	rows, err := s.db.Query(
		`SELECT `+documentColumns+` FROM legacy_documents ORDER BY id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(rows *sql.Rows) (*model.Document, error) {
	var d model.Document
	var body []byte
	if err := rows.Scan(&d.ID, &d.FolderID, &d.DeveloperName, &d.Type, &d.Name,
		&d.Description, &d.Keywords, &d.URL, &body,
		&d.AuthorID, &d.CreatedBy, &d.CreatedAt, &d.ModifiedBy, &d.ModifiedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	d.Body = body
	return &d, nil
}

func (s *SQLiteStore) CountDocumentsByFolder(folderID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM legacy_documents WHERE folder_id = ?`, folderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Conversion ledger

const trackingColumns = `id, folder_id, folder_name, folder_developer_name, permission_id, created_at`

func (s *SQLiteStore) FindTrackingByFolderIDs(folderIDs []string) ([]*model.TrackingRecord, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + trackingColumns + ` FROM conversion_tracking WHERE folder_id IN (` + placeholders(len(folderIDs)) + `) ORDER BY folder_developer_name`
	return s.queryTrackingRecords(query, stringArgs(folderIDs)...)
}

func (s *SQLiteStore) ListTrackingRecords() ([]*model.TrackingRecord, error) {
	query := `SELECT ` + trackingColumns + ` FROM conversion_tracking ORDER BY folder_developer_name`
	return s.queryTrackingRecords(query)
}

func (s *SQLiteStore) queryTrackingRecords(query string, args ...any) ([]*model.TrackingRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tracking records: %w", err)
	}
	defer rows.Close()

	var records []*model.TrackingRecord
	for rows.Next() {
		var rec model.TrackingRecord
		if err := rows.Scan(&rec.ID, &rec.FolderID, &rec.FolderName,
			&rec.FolderDeveloperName, &rec.PermissionID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tracking record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		if err := s.loadTrackingGroups(rec); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *SQLiteStore) loadTrackingGroups(rec *model.TrackingRecord) error {
	rows, err := s.db.Query(
		`SELECT group_id FROM conversion_tracking_groups WHERE tracking_id = ? ORDER BY group_id`,
		rec.ID)
	if err != nil {
		return fmt.Errorf("loading tracking groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return fmt.Errorf("scanning tracking group: %w", err)
		}
		rec.GroupIDs = append(rec.GroupIDs, groupID)
	}
	return rows.Err()
}

func (s *SQLiteStore) CreateTrackingRecords(records []*model.TrackingRecord) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range records {
		// The UNIQUE constraint on folder_id makes this fail if a
		// concurrent registration already tracked the folder.
		_, err := tx.ExecContext(ctx,
			`INSERT INTO conversion_tracking (id, folder_id, folder_name, folder_developer_name, permission_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.FolderID, rec.FolderName, rec.FolderDeveloperName, rec.PermissionID, rec.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting tracking record for folder %s: %w", rec.FolderDeveloperName, err)
		}
		for _, groupID := range rec.GroupIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO conversion_tracking_groups (tracking_id, group_id) VALUES (?, ?)`,
				rec.ID, groupID)
			if err != nil {
				return fmt.Errorf("inserting tracking group %s: %w", groupID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTrackingRecord(folderID string) error {
	// The group relation rows go with it via ON DELETE CASCADE.
	res, err := s.db.Exec(`DELETE FROM conversion_tracking WHERE folder_id = ?`, folderID)
	if err != nil {
		return fmt.Errorf("deleting tracking record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting tracking record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no tracking record for folder %s", folderID)
	}
	return nil
}

// Provisioned groups and libraries

func (s *SQLiteStore) FindGroupsBySlugs(slugs []string) (map[string]*model.AccessGroup, error) {
	groups := make(map[string]*model.AccessGroup, len(slugs))
	if len(slugs) == 0 {
		return groups, nil
	}

	query := `SELECT id, developer_name, name, created_at FROM access_groups WHERE developer_name IN (` + placeholders(len(slugs)) + `)`
	rows, err := s.db.Query(query, stringArgs(slugs)...)
	if err != nil {
		return nil, fmt.Errorf("finding groups by slug: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g model.AccessGroup
		if err := rows.Scan(&g.ID, &g.DeveloperName, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning access group: %w", err)
		}
		groups[g.DeveloperName] = &g
	}
	return groups, rows.Err()
}

func (s *SQLiteStore) FindLibrariesBySlugs(slugs []string) (map[string]*model.Library, error) {
	libraries := make(map[string]*model.Library, len(slugs))
	if len(slugs) == 0 {
		return libraries, nil
	}

	query := `SELECT id, developer_name, name, created_at FROM libraries WHERE developer_name IN (` + placeholders(len(slugs)) + `)`
	rows, err := s.db.Query(query, stringArgs(slugs)...)
	if err != nil {
		return nil, fmt.Errorf("finding libraries by slug: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lib model.Library
		if err := rows.Scan(&lib.ID, &lib.DeveloperName, &lib.Name, &lib.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning library: %w", err)
		}
		libraries[lib.DeveloperName] = &lib
	}
	return libraries, rows.Err()
}

func (s *SQLiteStore) CreateGroups(groups []*model.AccessGroup) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, g := range groups {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO access_groups (id, developer_name, name, created_at) VALUES (?, ?, ?, ?)`,
			g.ID, g.DeveloperName, g.Name, g.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting access group %s: %w", g.DeveloperName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateLibraries(libraries []*model.Library) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, lib := range libraries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO libraries (id, developer_name, name, created_at) VALUES (?, ?, ?, ?)`,
			lib.ID, lib.DeveloperName, lib.Name, lib.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting library %s: %w", lib.DeveloperName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddGroupMembers(members []*model.GroupMember) (int, error) {
	if len(members) == 0 {
		return 0, nil
	}
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, m := range members {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO access_group_members (group_id, member_id) VALUES (?, ?)`,
			m.GroupID, m.MemberID)
		if err != nil {
			return 0, fmt.Errorf("inserting group member %s: %w", m.MemberID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("inserting group member %s: %w", m.MemberID, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

func (s *SQLiteStore) AddLibraryGrants(grants []*model.LibraryGrant) (int, error) {
	if len(grants) == 0 {
		return 0, nil
	}
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, g := range grants {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO library_grants (library_id, group_id, permission_id) VALUES (?, ?, ?)`,
			g.LibraryID, g.GroupID, g.PermissionID)
		if err != nil {
			return 0, fmt.Errorf("inserting library grant: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("inserting library grant: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

// FindGroupMembers returns the member ids of a group, sorted. Used by the
// status/inspection surfaces rather than the conversion stages.
func (s *SQLiteStore) FindGroupMembers(groupID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT member_id FROM access_group_members WHERE group_id = ? ORDER BY member_id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing group members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning group member: %w", err)
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

// FindLibraryGrants returns the grants on a library.
func (s *SQLiteStore) FindLibraryGrants(libraryID string) ([]*model.LibraryGrant, error) {
	rows, err := s.db.Query(
		`SELECT library_id, group_id, permission_id FROM library_grants WHERE library_id = ?`, libraryID)
	if err != nil {
		return nil, fmt.Errorf("listing library grants: %w", err)
	}
	defer rows.Close()

	var grants []*model.LibraryGrant
	for rows.Next() {
		var g model.LibraryGrant
		if err := rows.Scan(&g.LibraryID, &g.GroupID, &g.PermissionID); err != nil {
			return nil, fmt.Errorf("scanning library grant: %w", err)
		}
		grants = append(grants, &g)
	}
	return grants, rows.Err()
}

// Migrated files

const migratedFileColumns = `id, library_id, title, description, keywords, content_type, external_url,
	path_on_client, checksum, size, encrypted, owner_id, created_by, created_at,
	modified_by, modified_at, source_document_id, source_folder_id`

func (s *SQLiteStore) FindMigratedSourceIDs(docIDs, libraryIDs []string) (map[string]bool, error) {
	migrated := make(map[string]bool)
	if len(docIDs) == 0 || len(libraryIDs) == 0 {
		return migrated, nil
	}

	query := `SELECT source_document_id FROM migrated_files
		WHERE source_document_id IN (` + placeholders(len(docIDs)) + `)
		AND library_id IN (` + placeholders(len(libraryIDs)) + `)`
	args := append(stringArgs(docIDs), stringArgs(libraryIDs)...)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding migrated documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning migrated document id: %w", err)
		}
		migrated[id] = true
	}
	return migrated, rows.Err()
}

func (s *SQLiteStore) CreateMigratedFiles(files []*model.MigratedFile) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range files {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO migrated_files (`+migratedFileColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.LibraryID, f.Title, f.Description, f.Keywords, f.ContentType, f.ExternalURL,
			f.PathOnClient, f.Checksum, f.Size, f.Encrypted, f.OwnerID, f.CreatedBy, f.CreatedAt,
			f.ModifiedBy, f.ModifiedAt, f.SourceDocumentID, f.SourceFolderID)
		if err != nil {
			return fmt.Errorf("inserting migrated file for document %s: %w", f.SourceDocumentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindMigratedFileByID(id string) (*model.MigratedFile, error) {
	row := s.db.QueryRow(`SELECT `+migratedFileColumns+` FROM migrated_files WHERE id = ?`, id)

	var f model.MigratedFile
	err := row.Scan(&f.ID, &f.LibraryID, &f.Title, &f.Description, &f.Keywords, &f.ContentType,
		&f.ExternalURL, &f.PathOnClient, &f.Checksum, &f.Size, &f.Encrypted, &f.OwnerID,
		&f.CreatedBy, &f.CreatedAt, &f.ModifiedBy, &f.ModifiedAt, &f.SourceDocumentID, &f.SourceFolderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding migrated file: %w", err)
	}
	return &f, nil
}

func (s *SQLiteStore) CountMigratedByFolder(folderID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM migrated_files WHERE source_folder_id = ?`, folderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting migrated files: %w", err)
	}
	return n, nil
}

// Operation audit

func (s *SQLiteStore) CreateConversionOperation(operation, parameters string) (*model.ConversionOperation, error) {
	startedAt := time.Now()
	res, err := s.db.Exec(
		`INSERT INTO conversion_operations (operation, parameters, started_at) VALUES (?, ?, ?)`,
		operation, parameters, startedAt)
	if err != nil {
		return nil, fmt.Errorf("creating conversion operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating conversion operation: %w", err)
	}
	return &model.ConversionOperation{
		ID:         id,
		Operation:  operation,
		Parameters: parameters,
		StartedAt:  startedAt,
		Status:     "success",
	}, nil
}

func (s *SQLiteStore) FinishConversionOperation(id int64, status string) error {
	_, err := s.db.Exec(
		`UPDATE conversion_operations SET finished_at = ?, status = ? WHERE id = ?`,
		time.Now(), status, id)
	if err != nil {
		return fmt.Errorf("finishing conversion operation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListConversionOperations(limit int) ([]*model.ConversionOperation, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, parameters, started_at, finished_at, status
		 FROM conversion_operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversion operations: %w", err)
	}
	defer rows.Close()

	var ops []*model.ConversionOperation
	for rows.Next() {
		var op model.ConversionOperation
		var finished sql.NullTime
		if err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.StartedAt, &finished, &op.Status); err != nil {
			return nil, fmt.Errorf("scanning conversion operation: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			op.FinishedAt = &t
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

// Legacy seeding. Not part of the conversion interface: the legacy tables
// normally arrive populated, but the import command and the tests need a way
// to load them.

func (s *SQLiteStore) SeedLegacyFolders(folders []*model.Folder) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, f := range folders {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO legacy_folders (id, developer_name, name) VALUES (?, ?, ?)`,
			f.ID, f.DeveloperName, f.Name)
		if err != nil {
			return fmt.Errorf("inserting legacy folder %s: %w", f.DeveloperName, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) SeedLegacyDocuments(docs []*model.Document) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, d := range docs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO legacy_documents (`+documentColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.FolderID, d.DeveloperName, d.Type, d.Name, d.Description, d.Keywords, d.URL, d.Body,
			d.AuthorID, d.CreatedBy, d.CreatedAt, d.ModifiedBy, d.ModifiedAt)
		if err != nil {
			return fmt.Errorf("inserting legacy document %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// Path returns the database file path (or ":memory:").
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the store schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrateUp brings the store schema to the latest version.
func (s *SQLiteStore) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the store connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements the convert.Store interface
var _ convert.Store = (*SQLiteStore)(nil)
