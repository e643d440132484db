package directory

import (
	"fmt"
	"time"

	"doc2file/internal/config"
	"doc2file/internal/convert"
)

// NewDirectoryFromConfig creates a DirectoryService based on the directory config type.
func NewDirectoryFromConfig(cfg config.DirectoryConfig) (convert.DirectoryService, error) {
	switch cfg.Type {
	case "http":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base_url required for http directory")
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		return NewHTTPDirectory(cfg.BaseURL, cfg.Token, timeout), nil
	case "static":
		return NewStaticDirectory(cfg.Folders), nil
	default:
		return nil, fmt.Errorf("unknown directory type: %s", cfg.Type)
	}
}
