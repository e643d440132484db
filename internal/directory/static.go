package directory

import (
	"doc2file/internal/config"
	"doc2file/internal/convert"
	"doc2file/internal/model"
)

// StaticDirectory serves membership snapshots from data inlined in the
// config file. Useful for tests and for air-gapped runs where the membership
// export is prepared out of band.
type StaticDirectory struct {
	folders map[string]*model.MembershipSnapshot
}

// NewStaticDirectory builds a directory from config entries.
func NewStaticDirectory(folders []config.DirectoryFolder) *StaticDirectory {
	byName := make(map[string]*model.MembershipSnapshot, len(folders))
	for _, f := range folders {
		byName[f.DeveloperName] = &model.MembershipSnapshot{
			FolderDeveloperName: f.DeveloperName,
			FolderName:          f.Name,
			GroupIDs:            append([]string(nil), f.GroupIDs...),
			Access:              model.AccessLevel(f.Access),
		}
	}
	return &StaticDirectory{folders: byName}
}

// GetDocumentFolderMembership returns snapshots for the requested names.
// Names the directory has no entry for are omitted, matching the remote
// service's behavior for unknown folders.
func (d *StaticDirectory) GetDocumentFolderMembership(devNames []string) ([]*model.MembershipSnapshot, error) {
	var snapshots []*model.MembershipSnapshot
	for _, name := range devNames {
		if snap, ok := d.folders[name]; ok {
			snapshots = append(snapshots, snap)
		}
	}
	return snapshots, nil
}

// Compile-time check that StaticDirectory implements convert.DirectoryService
var _ convert.DirectoryService = (*StaticDirectory)(nil)
