package testutil

import (
	"sync"

	"doc2file/internal/convert"
	"doc2file/internal/model"
)

// StubDirectory is an in-memory DirectoryService for testing. It records the
// developer-names of every lookup and can be primed to fail.
type StubDirectory struct {
	mu        sync.Mutex
	snapshots map[string]*model.MembershipSnapshot
	calls     [][]string

	// Err, when set, is returned by every lookup.
	Err error
}

var _ convert.DirectoryService = (*StubDirectory)(nil)

// NewStubDirectory creates an empty StubDirectory.
func NewStubDirectory() *StubDirectory {
	return &StubDirectory{snapshots: make(map[string]*model.MembershipSnapshot)}
}

// Add primes the directory with a folder's membership snapshot.
func (d *StubDirectory) Add(snap *model.MembershipSnapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshots[snap.FolderDeveloperName] = snap
}

// GetDocumentFolderMembership returns primed snapshots for the requested
// names, omitting names the directory does not know.
func (d *StubDirectory) GetDocumentFolderMembership(devNames []string) ([]*model.MembershipSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, append([]string(nil), devNames...))
	if d.Err != nil {
		return nil, d.Err
	}

	var snapshots []*model.MembershipSnapshot
	for _, name := range devNames {
		if snap, ok := d.snapshots[name]; ok {
			snapshots = append(snapshots, snap)
		}
	}
	return snapshots, nil
}

// Calls returns the developer-name sets of every lookup made so far.
func (d *StubDirectory) Calls() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}
