package testutil

import (
	"doc2file/internal/payload"
)

// NewTestPayloadStore creates an in-memory payload store. The concrete type
// is returned so tests can count stored payloads.
func NewTestPayloadStore() *payload.MemoryStore {
	return payload.NewMemoryStore()
}
