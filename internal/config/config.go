package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for doc2file.
type Config struct {
	BaseDir     string            `toml:"base_dir"`
	LogDir      string            `toml:"log_dir"`
	Database    DatabaseConfig    `toml:"database"`
	Directory   DirectoryConfig   `toml:"directory"`
	Payload     PayloadConfig     `toml:"payload"`
	Encryption  EncryptionConfig  `toml:"encryption"`
	Permissions PermissionsConfig `toml:"permissions"`
	Migration   MigrationConfig   `toml:"migration"`
}

// DatabaseConfig configures the relational store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// DirectoryConfig configures the external directory lookup service.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DirectoryConfig struct {
	Type string `toml:"type"` // "http" or "static"

	// HTTP-specific fields (only used when Type == "http")
	BaseURL        string `toml:"base_url,omitempty"`
	Token          string `toml:"token,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"` // defaults to 30

	// Static-specific fields (only used when Type == "static")
	Folders []DirectoryFolder `toml:"folders,omitempty"`
}

// DirectoryFolder is one folder's membership data for the static directory
// backend.
type DirectoryFolder struct {
	DeveloperName string   `toml:"developer_name"`
	Name          string   `toml:"name"`
	GroupIDs      []string `toml:"group_ids"`
	Access        string   `toml:"access"` // "ReadOnly" or "ReadWrite"
}

// PayloadConfig configures where migrated binary payloads are stored.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type PayloadConfig struct {
	Type string `toml:"type"` // "filesystem", "memory", or "s3"

	// Filesystem-specific fields (only used when Type == "filesystem")
	Root string `toml:"root,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3Endpoint        string `toml:"s3_endpoint,omitempty"` // non-AWS endpoints, forces path style
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// EncryptionConfig configures optional payload-at-rest encryption.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "none" (default), "age", or "test"
	PublicKeyPath  string `toml:"public_key_path,omitempty"`
	PrivateKeyPath string `toml:"private_key_path,omitempty"`
}

// PermissionsConfig holds the two opaque permission identifiers the
// conversion maps folder access levels onto.
type PermissionsConfig struct {
	ReadOnlyID  string `toml:"read_only_id"`
	ReadWriteID string `toml:"read_write_id"`
}

// MigrationConfig tunes the document migration stage.
type MigrationConfig struct {
	BatchSize int `toml:"batch_size"` // documents per migration call; defaults to 200
}

// DefaultBatchSize bounds one migration call when batch_size is unset.
const DefaultBatchSize = 200

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Directory: DirectoryConfig{
			Type: "http",
		},
		Payload: PayloadConfig{
			Type: "filesystem",
			Root: filepath.Join(baseDir, "payloads"),
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "doc2file.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "doc2file.key"),
		},
		Migration: MigrationConfig{
			BatchSize: DefaultBatchSize,
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
