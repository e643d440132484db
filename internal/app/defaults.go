package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - DOC2FILE_CONFIG_PATH: config file location (default: ~/.config/doc2file.toml)
//   - DOC2FILE_HOME: base directory for doc2file data (default: ~/.local/share/doc2file)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking DOC2FILE_CONFIG_PATH
// env var first, then falling back to the default ~/.config/doc2file.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("DOC2FILE_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "doc2file.toml"), nil
}

// getBaseDir returns the base directory for doc2file data, checking
// DOC2FILE_HOME env var first, then falling back to the XDG default
// ~/.local/share/doc2file.
func getBaseDir() (string, error) {
	if path := os.Getenv("DOC2FILE_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "doc2file"), nil
}
