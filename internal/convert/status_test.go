package convert_test

import (
	"testing"

	"doc2file/internal/convert"
	"doc2file/internal/model"
)

func TestConversionService_GetStatus(t *testing.T) {
	t.Run("no folders yields no statuses", func(t *testing.T) {
		svc, _, _, _ := newTestService(t, nil)

		statuses, err := svc.GetStatus()
		if err != nil {
			t.Fatalf("GetStatus() error = %v", err)
		}
		if len(statuses) != 0 {
			t.Errorf("statuses = %d, want 0", len(statuses))
		}
	})

	t.Run("tracks folders through the full pipeline", func(t *testing.T) {
		svc, store, dir, _ := newTestService(t, nil)
		f1 := seedFolder(t, store, "f-1", "alpha", "Alpha")
		seedFolder(t, store, "f-2", "beta", "Beta")
		dir.Add(snapshot("alpha", "Alpha", []string{"g-1"}, model.AccessReadWrite))

		docs := []*model.Document{
			urlDocument("d-1", "f-1", "one", "https://example.com/1"),
			binaryDocument("d-2", "f-1", "two", "PDF", []byte("body")),
			urlDocument("d-3", "f-2", "three", "https://example.com/3"),
		}
		if err := store.SeedLegacyDocuments(docs); err != nil {
			t.Fatalf("seeding documents: %v", err)
		}

		// Before anything runs, nothing is tracked.
		statuses, err := svc.GetStatus()
		if err != nil {
			t.Fatalf("GetStatus() error = %v", err)
		}
		if len(statuses) != 2 {
			t.Fatalf("statuses = %d, want 2", len(statuses))
		}
		for _, s := range statuses {
			if s.Tracked || s.Provisioned {
				t.Errorf("folder %s tracked/provisioned before registration", s.FolderDeveloperName)
			}
		}

		// Register and provision alpha only, then migrate its documents.
		registerAndProvision(t, svc, f1)
		if _, err := svc.MigrateDocuments(docs[:2]); err != nil {
			t.Fatalf("MigrateDocuments() error = %v", err)
		}

		statuses, err = svc.GetStatus()
		if err != nil {
			t.Fatalf("GetStatus() error = %v", err)
		}

		byName := make(map[string]*convert.FolderStatus)
		for _, s := range statuses {
			byName[s.FolderDeveloperName] = s
		}

		alpha := byName["alpha"]
		if alpha == nil || !alpha.Tracked || !alpha.Provisioned {
			t.Fatalf("alpha status = %+v, want tracked and provisioned", alpha)
		}
		if alpha.DocumentsTotal != 2 || alpha.DocumentsMigrated != 2 {
			t.Errorf("alpha docs = %d/%d migrated, want 2/2", alpha.DocumentsMigrated, alpha.DocumentsTotal)
		}

		beta := byName["beta"]
		if beta == nil || beta.Tracked || beta.Provisioned {
			t.Fatalf("beta status = %+v, want untracked", beta)
		}
		if beta.DocumentsTotal != 1 || beta.DocumentsMigrated != 0 {
			t.Errorf("beta docs = %d/%d migrated, want 0/1", beta.DocumentsMigrated, beta.DocumentsTotal)
		}
	})
}
