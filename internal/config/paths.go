// Package config handles promptwizard settings and filesystem locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileMode is used for files written on the user's behalf.
const DefaultFileMode = 0644

// Paths provides all promptwizard-related filesystem paths.
type Paths struct {
	ConfigDir     string // ~/.config/promptwizard
	ConfigFile    string // ~/.config/promptwizard/config.yaml
	StorageDir    string // ~/.config/promptwizard/storage (file backend)
	StorageDB     string // ~/.config/promptwizard/storage.db (sqlite backend)
	BootstrapFile string // ~/.config/promptwizard/gemini_api_config.json
}

// NewPaths creates Paths under ~/.config.
// We use ~/.config explicitly for cross-platform consistency rather than
// platform-specific defaults (like ~/Library/Application Support on macOS).
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	return NewPathsWithOverrides(filepath.Join(home, ".config", "promptwizard"))
}

// NewPathsWithOverrides allows overriding the config directory for testing.
func NewPathsWithOverrides(configDir string) *Paths {
	return &Paths{
		ConfigDir:     configDir,
		ConfigFile:    filepath.Join(configDir, "config.yaml"),
		StorageDir:    filepath.Join(configDir, "storage"),
		StorageDB:     filepath.Join(configDir, "storage.db"),
		BootstrapFile: filepath.Join(configDir, "gemini_api_config.json"),
	}
}

// ResolveBootstrap returns the bootstrap file path for a settings value.
// Relative paths are resolved against the config directory.
func (p *Paths) ResolveBootstrap(setting string) string {
	if setting == "" {
		return p.BootstrapFile
	}
	if filepath.IsAbs(setting) {
		return setting
	}
	return filepath.Join(p.ConfigDir, setting)
}

// ExportFileName returns the default file name for a config export.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("gemini_config_%d.json", now.UnixMilli())
}

// SavedPromptFileName returns the default file name for a saved prompt.
func SavedPromptFileName(now time.Time) string {
	return fmt.Sprintf("optimized-prompt-%d.txt", now.UnixMilli())
}
