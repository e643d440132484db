package convert

import (
	"fmt"

	"doc2file/internal/model"
)

// PermissionMap resolves a folder's public access classification to the
// permission id granted on the provisioned library. Only read-only and
// read-write have entries; every other classification (including
// "shared with all users") is rejected rather than silently mapped to
// nothing.
type PermissionMap struct {
	ReadOnlyID  string
	ReadWriteID string
}

// Resolve returns the permission id for an access level, or an
// UnsupportedAccessError naming the folder and the level.
func (m PermissionMap) Resolve(folderDeveloperName string, level model.AccessLevel) (string, error) {
	switch level {
	case model.AccessReadOnly:
		return m.ReadOnlyID, nil
	case model.AccessReadWrite:
		return m.ReadWriteID, nil
	default:
		return "", &UnsupportedAccessError{
			FolderDeveloperName: folderDeveloperName,
			Access:              level,
		}
	}
}

// UnsupportedAccessError reports a folder whose public access classification
// has no permission mapping. Registration aborts on this error before
// anything is persisted.
type UnsupportedAccessError struct {
	FolderDeveloperName string
	Access              model.AccessLevel
}

func (e *UnsupportedAccessError) Error() string {
	return fmt.Sprintf("folder %s has unsupported access level %q", e.FolderDeveloperName, e.Access)
}
