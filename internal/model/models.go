package model

import "time"

// DocumentTypeURL marks a legacy document whose body is an external link
// rather than a binary payload.
const DocumentTypeURL = "URL"

// AccessLevel classifies the effective public access of a legacy folder as
// reported by the directory service. Only read-only and read-write have a
// permission mapping; anything else is rejected during registration.
type AccessLevel string

const (
	AccessReadOnly  AccessLevel = "ReadOnly"
	AccessReadWrite AccessLevel = "ReadWrite"
)

// Folder is a legacy document folder. Read-only input to the conversion.
type Folder struct {
	ID            string
	DeveloperName string // Unique slug, e.g. "hr_policies"
	Name          string // Display name
}

// Document is a legacy document row. Read-only input to the conversion.
type Document struct {
	ID            string
	FolderID      string
	DeveloperName string
	Type          string // DocumentTypeURL or a binary content type like "PDF"
	Name          string
	Description   string
	Keywords      string
	URL           string // Only set for URL documents
	Body          []byte // Only set for binary documents
	AuthorID      string
	CreatedBy     string
	CreatedAt     time.Time
	ModifiedBy    string
	ModifiedAt    time.Time
}

// MembershipSnapshot is the directory service's view of a folder's sharing:
// the groups with access plus the effective public access level. It is never
// persisted as-is; registration captures it into a TrackingRecord.
type MembershipSnapshot struct {
	FolderDeveloperName string
	FolderName          string
	GroupIDs            []string
	Access              AccessLevel
}

// TrackingRecord is one row of the conversion ledger. Its existence marks a
// folder as queued or converted; deleting it is the only way to re-trigger
// conversion for that folder.
type TrackingRecord struct {
	ID                  string
	FolderID            string
	FolderName          string
	FolderDeveloperName string
	GroupIDs            []string // Snapshot group ids, stored as relation rows
	PermissionID        string
	CreatedAt           time.Time
}

// AccessGroup is a provisioned group granting library access. Its
// DeveloperName is the deterministic slug shared with its paired Library.
type AccessGroup struct {
	ID            string
	DeveloperName string
	Name          string // "Library: " + folder display name
	CreatedAt     time.Time
}

// GroupMember is one identity's membership in an AccessGroup.
type GroupMember struct {
	GroupID  string
	MemberID string
}

// Library is a provisioned content library, paired 1:1 with an AccessGroup
// by DeveloperName.
type Library struct {
	ID            string
	DeveloperName string
	Name          string // Folder display name
	CreatedAt     time.Time
}

// LibraryGrant gives an AccessGroup access to a Library at a permission.
type LibraryGrant struct {
	LibraryID    string
	GroupID      string
	PermissionID string
}

// MigratedFile is the converted artifact replacing a legacy document.
// Audit fields are copied verbatim from the source document; the two
// Source* fields are the back-references used for the idempotence check.
type MigratedFile struct {
	ID           string
	LibraryID    string
	Title        string
	Description  string
	Keywords     string
	ContentType  string
	ExternalURL  string // Set for URL documents
	PathOnClient string // "/<devName>.<TYPE>", set for binary documents
	Checksum     string // SHA-256 of the plaintext payload, set for binary documents
	Size         int64  // Stored payload size in bytes
	Encrypted    bool   // Whether the stored payload is age-encrypted
	OwnerID      string
	CreatedBy    string
	CreatedAt    time.Time
	ModifiedBy   string
	ModifiedAt   time.Time

	SourceDocumentID string
	SourceFolderID   string
}

// ConversionOperation records one CLI run that may have mutated the store.
type ConversionOperation struct {
	ID         int64
	Operation  string
	Parameters string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string // "success" or "error"
}
