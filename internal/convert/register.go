package convert

import (
	"fmt"
	"sort"

	"doc2file/internal/model"
)

// SkippedFolder identifies a folder left out of a registration call because
// the ledger already tracks it. Deleting the named tracking record is the
// way to force reprocessing.
type SkippedFolder struct {
	FolderID            string
	FolderDeveloperName string
	TrackingID          string
}

// RegisterReport is the outcome of one RegisterFolders call.
type RegisterReport struct {
	Registered []*model.TrackingRecord
	Skipped    []SkippedFolder
}

// RegisterFolders queues folders for conversion. Folders already present in
// the ledger are skipped; for the rest, the directory service is asked once
// for the whole set's membership, each snapshot's access level is resolved
// to a permission id, and the resulting tracking records are persisted in a
// single all-or-nothing batch.
//
// An empty folder set is a no-op. An unsupported access level aborts the
// whole call before anything is persisted.
func (s *ConversionService) RegisterFolders(folders []*model.Folder) (*RegisterReport, error) {
	report := &RegisterReport{}
	if len(folders) == 0 {
		return report, nil
	}

	byID := make(map[string]*model.Folder, len(folders))
	folderIDs := make([]string, 0, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
		folderIDs = append(folderIDs, f.ID)
	}

	// Drop folders the ledger already tracks.
	existing, err := s.store.FindTrackingByFolderIDs(folderIDs)
	if err != nil {
		return nil, fmt.Errorf("checking conversion ledger: %w", err)
	}
	candidates := make(map[string]*model.Folder, len(folders))
	for _, f := range folders {
		candidates[f.DeveloperName] = f
	}
	for _, rec := range existing {
		f := byID[rec.FolderID]
		if f == nil {
			continue
		}
		delete(candidates, f.DeveloperName)
		s.logger.Info("folder already tracked, skipping",
			"folder", f.DeveloperName, "tracking_id", rec.ID,
			"hint", "delete the tracking record to force reprocessing")
		report.Skipped = append(report.Skipped, SkippedFolder{
			FolderID:            f.ID,
			FolderDeveloperName: f.DeveloperName,
			TrackingID:          rec.ID,
		})
	}
	if len(candidates) == 0 {
		return report, nil
	}

	devNames := make([]string, 0, len(candidates))
	for name := range candidates {
		devNames = append(devNames, name)
	}
	sort.Strings(devNames)

	// One batched lookup for the full remaining set.
	snapshots, err := s.directory.GetDocumentFolderMembership(devNames)
	if err != nil {
		return nil, fmt.Errorf("fetching folder membership: %w", err)
	}

	records := make([]*model.TrackingRecord, 0, len(snapshots))
	for _, snap := range snapshots {
		folder := candidates[snap.FolderDeveloperName]
		if folder == nil {
			s.logger.Warn("directory returned unknown folder", "folder", snap.FolderDeveloperName)
			continue
		}

		permissionID, err := s.permissions.Resolve(folder.DeveloperName, snap.Access)
		if err != nil {
			return nil, err
		}

		name := snap.FolderName
		if name == "" {
			name = folder.Name
		}
		records = append(records, &model.TrackingRecord{
			ID:                  s.idgen.New(),
			FolderID:            folder.ID,
			FolderName:          name,
			FolderDeveloperName: folder.DeveloperName,
			GroupIDs:            snap.GroupIDs,
			PermissionID:        permissionID,
			CreatedAt:           s.clock.Now(),
		})
	}

	if len(records) > 0 {
		if err := s.store.CreateTrackingRecords(records); err != nil {
			return nil, fmt.Errorf("persisting tracking records: %w", err)
		}
	}
	report.Registered = records

	s.logger.Info("folders registered", "registered", len(records), "skipped", len(report.Skipped))
	return report, nil
}
