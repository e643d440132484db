package convert

import (
	"fmt"

	"doc2file/internal/model"
)

// FolderStatus reports how far one legacy folder has progressed through the
// conversion pipeline.
type FolderStatus struct {
	FolderID            string
	FolderDeveloperName string
	FolderName          string
	Tracked             bool
	TrackingID          string
	Provisioned         bool
	LibraryID           string
	DocumentsTotal      int
	DocumentsMigrated   int
}

// GetStatus returns one status entry per legacy folder, in store order.
func (s *ConversionService) GetStatus() ([]*FolderStatus, error) {
	folders, err := s.store.ListFolders()
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	if len(folders) == 0 {
		return nil, nil
	}

	folderIDs := make([]string, 0, len(folders))
	slugs := make([]string, 0, len(folders))
	for _, f := range folders {
		folderIDs = append(folderIDs, f.ID)
		slugs = append(slugs, LibrarySlug(f.DeveloperName))
	}

	tracking, err := s.store.FindTrackingByFolderIDs(folderIDs)
	if err != nil {
		return nil, fmt.Errorf("reading conversion ledger: %w", err)
	}
	trackingByFolder := make(map[string]*model.TrackingRecord, len(tracking))
	for _, rec := range tracking {
		trackingByFolder[rec.FolderID] = rec
	}

	libraries, err := s.store.FindLibrariesBySlugs(slugs)
	if err != nil {
		return nil, fmt.Errorf("resolving libraries: %w", err)
	}

	statuses := make([]*FolderStatus, 0, len(folders))
	for _, f := range folders {
		st := &FolderStatus{
			FolderID:            f.ID,
			FolderDeveloperName: f.DeveloperName,
			FolderName:          f.Name,
		}
		if rec := trackingByFolder[f.ID]; rec != nil {
			st.Tracked = true
			st.TrackingID = rec.ID
		}
		if lib := libraries[LibrarySlug(f.DeveloperName)]; lib != nil {
			st.Provisioned = true
			st.LibraryID = lib.ID
		}

		st.DocumentsTotal, err = s.store.CountDocumentsByFolder(f.ID)
		if err != nil {
			return nil, fmt.Errorf("counting documents for %s: %w", f.DeveloperName, err)
		}
		st.DocumentsMigrated, err = s.store.CountMigratedByFolder(f.ID)
		if err != nil {
			return nil, fmt.Errorf("counting migrated files for %s: %w", f.DeveloperName, err)
		}

		statuses = append(statuses, st)
	}
	return statuses, nil
}
