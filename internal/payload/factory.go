package payload

import (
	"fmt"

	"doc2file/internal/config"
	"doc2file/internal/convert"
)

// NewPayloadStoreFromConfig creates a PayloadStore based on the payload config type.
func NewPayloadStoreFromConfig(cfg config.PayloadConfig) (convert.PayloadStore, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("root required for filesystem payload store")
		}
		return NewFileSystemStore(cfg.Root)
	case "memory":
		return NewMemoryStore(), nil
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown payload store type: %s", cfg.Type)
	}
}
