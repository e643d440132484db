package convert

import "doc2file/internal/model"

// DirectoryService looks up a legacy folder's sharing membership from the
// external directory. One call covers the whole folder set so the number of
// round-trips is bounded by the batch, not the folder count. There is no
// pagination contract; the caller bounds the input size.
type DirectoryService interface {
	// GetDocumentFolderMembership returns one snapshot per known folder
	// developer-name. Names the directory does not know are simply absent
	// from the result.
	GetDocumentFolderMembership(devNames []string) ([]*model.MembershipSnapshot, error)
}
