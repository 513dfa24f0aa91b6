// Package config provides hierarchical configuration management for prbump
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.prbump/config.yml) > user config (~/.config/prbump/config.yml)
// > defaults. Legacy JSON configs are still honored when no YAML config exists.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// PRBUMP_STRICT=1 or PRBUMP_PRDOC_DIR=changes.
const envPrefix = "PRBUMP_"

// Configuration represents the prbump CLI tool configuration.
type Configuration struct {
	// PrdocDir is the directory that holds record files, resolved against
	// the repository root when inside a git work tree.
	// Can be set via PRBUMP_PRDOC_DIR env var.
	PrdocDir string `koanf:"prdoc_dir"`

	// Pattern is the filename glob record files must match.
	Pattern string `koanf:"pattern"`

	// Audiences is the canonical audience section order for reports.
	// Audiences not listed here appear after the listed ones, in the order
	// they are first seen.
	Audiences []string `koanf:"audiences"`

	// Strict upgrades unknown audience tags from accepted to errors.
	// Can be set via PRBUMP_STRICT env var.
	Strict bool `koanf:"strict"`

	// Plain disables colors and icons in terminal output.
	Plain bool `koanf:"plain"`

	// BaseBranch is the branch the changed command diffs against.
	BaseBranch string `koanf:"base_branch"`
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// YAML config paths:
//   - User config: ~/.config/prbump/config.yml (XDG compliant)
//   - Project config: .prbump/config.yml
//
// Legacy JSON config paths (used only when the YAML file is absent):
//   - User config: ~/.prbump/config.json
//   - Project config: .prbump/config.json
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, projectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config. The XDG YAML path is preferred;
// the legacy JSON path is read only when no YAML config exists.
func loadUserConfig(k *koanf.Koanf) error {
	yamlPath, err := UserConfigPath()
	if err == nil && fileExists(yamlPath) {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading user config %s: %w", yamlPath, err)
		}
		return nil
	}

	legacyPath, err := LegacyUserConfigPath()
	if err == nil && fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy user config %s: %w", legacyPath, err)
		}
	}

	return nil
}

// loadProjectConfig loads the project-level config, YAML preferred over
// legacy JSON. An explicit path overrides the default location and must exist.
func loadProjectConfig(k *koanf.Koanf, path string) error {
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", path, err)
		}
		return nil
	}

	yamlPath := ProjectConfigPath()
	if fileExists(yamlPath) {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		return nil
	}

	legacyPath := LegacyProjectConfigPath()
	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
	}

	return nil
}

// loadEnvironmentConfig applies PRBUMP_* environment variable overrides.
// PRBUMP_PRDOC_DIR maps to prdoc_dir, PRBUMP_BASE_BRANCH to base_branch, etc.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals the merged configuration and validates it.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the merged configuration is usable.
func Validate(cfg *Configuration) error {
	if cfg.PrdocDir == "" {
		return fmt.Errorf("prdoc_dir must not be empty")
	}
	if cfg.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if cfg.BaseBranch == "" {
		return fmt.Errorf("base_branch must not be empty")
	}
	return nil
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
