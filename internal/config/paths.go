package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/prbump/config.yml
// - macOS: ~/Library/Application Support/prbump/config.yml
// - Windows: %APPDATA%\prbump\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "prbump", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .prbump/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".prbump", "config.yml")
}

// LegacyUserConfigPath returns the path to the legacy user-level JSON config
// file: ~/.prbump/config.json
func LegacyUserConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".prbump", "config.json"), nil
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file: .prbump/config.json
func LegacyProjectConfigPath() string {
	return filepath.Join(".prbump", "config.json")
}
