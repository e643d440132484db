package convert_test

import (
	"testing"
	"time"

	"doc2file/internal/convert"
	"doc2file/internal/database"
	"doc2file/internal/model"
	"doc2file/internal/payload"
	"doc2file/internal/testutil"
)

var testPermissions = convert.PermissionMap{
	ReadOnlyID:  "perm-ro",
	ReadWriteID: "perm-rw",
}

// newTestService wires a ConversionService over an in-memory store, a stub
// directory and an in-memory payload store. encryptor may be nil.
func newTestService(t *testing.T, encryptor convert.Encryptor) (*convert.ConversionService, *database.SQLiteStore, *testutil.StubDirectory, *payload.MemoryStore) {
	t.Helper()

	store := testutil.NewTestStore(t)
	dir := testutil.NewStubDirectory()
	payloads := testutil.NewTestPayloadStore()

	svc := convert.NewConversionService(store, dir, payloads, encryptor, testPermissions,
		convert.NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator())
	return svc, store, dir, payloads
}

func seedFolder(t *testing.T, store *database.SQLiteStore, id, devName, name string) *model.Folder {
	t.Helper()
	f := &model.Folder{ID: id, DeveloperName: devName, Name: name}
	if err := store.SeedLegacyFolders([]*model.Folder{f}); err != nil {
		t.Fatalf("seeding folder %s: %v", devName, err)
	}
	return f
}

func urlDocument(id, folderID, devName, url string) *model.Document {
	return &model.Document{
		ID:            id,
		FolderID:      folderID,
		DeveloperName: devName,
		Type:          model.DocumentTypeURL,
		Name:          "Doc " + id,
		URL:           url,
		AuthorID:      "user-1",
		CreatedBy:     "user-1",
		CreatedAt:     time.Date(2019, 3, 2, 9, 0, 0, 0, time.UTC),
		ModifiedBy:    "user-2",
		ModifiedAt:    time.Date(2021, 7, 14, 16, 45, 0, 0, time.UTC),
	}
}

func binaryDocument(id, folderID, devName, contentType string, body []byte) *model.Document {
	return &model.Document{
		ID:            id,
		FolderID:      folderID,
		DeveloperName: devName,
		Type:          contentType,
		Name:          "Doc " + id,
		Description:   "description of " + id,
		Keywords:      "legacy, archive",
		Body:          body,
		AuthorID:      "user-1",
		CreatedBy:     "user-1",
		CreatedAt:     time.Date(2019, 3, 2, 9, 0, 0, 0, time.UTC),
		ModifiedBy:    "user-2",
		ModifiedAt:    time.Date(2021, 7, 14, 16, 45, 0, 0, time.UTC),
	}
}

func snapshot(devName, name string, groupIDs []string, access model.AccessLevel) *model.MembershipSnapshot {
	return &model.MembershipSnapshot{
		FolderDeveloperName: devName,
		FolderName:          name,
		GroupIDs:            groupIDs,
		Access:              access,
	}
}

// registerAndProvision runs the first two stages for the given folders so
// migration tests start from a provisioned state.
func registerAndProvision(t *testing.T, svc *convert.ConversionService, folders ...*model.Folder) {
	t.Helper()
	report, err := svc.RegisterFolders(folders)
	if err != nil {
		t.Fatalf("RegisterFolders() error = %v", err)
	}
	if _, err := svc.ProvisionLibraries(report.Registered); err != nil {
		t.Fatalf("ProvisionLibraries() error = %v", err)
	}
}
