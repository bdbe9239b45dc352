package config

import (
	"os"
	"path/filepath"

	"github.com/HartBrook/promptwizard/internal/catalog"
	"github.com/HartBrook/promptwizard/internal/errors"
	"github.com/HartBrook/promptwizard/internal/logging"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Vocabularies for response parsing and completeness checks.
const (
	VocabularyTraditionalChinese = "zh-tw"
	VocabularyEnglish            = "en"
)

// StorageConfig selects where local state is kept.
type StorageConfig struct {
	Backend string `yaml:"backend"`
}

// DefaultsConfig holds the selector values used when flags are omitted.
type DefaultsConfig struct {
	Category   string `yaml:"category,omitempty"`
	Complexity string `yaml:"complexity,omitempty"`
	Target     string `yaml:"target,omitempty"`
	Style      string `yaml:"style,omitempty"`
	Language   string `yaml:"language,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Settings represents the promptwizard settings file.
type Settings struct {
	Version    int            `yaml:"version"`
	Storage    StorageConfig  `yaml:"storage"`
	Defaults   DefaultsConfig `yaml:"defaults,omitempty"`
	Vocabulary string         `yaml:"vocabulary,omitempty"`
	Log        LogConfig      `yaml:"log,omitempty"`

	// Bootstrap is an optional Gemini config file read on first run.
	// Relative paths are resolved against the config directory.
	Bootstrap string `yaml:"bootstrap,omitempty"`
}

// Default values.
const (
	DefaultVersion  = 1
	DefaultLogLevel = "warn"
)

// DefaultSettings returns settings with every default applied.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	return LoadFrom(NewPaths().ConfigFile)
}

// LoadFrom reads and validates settings from a specific path.
// A missing file yields the defaults.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read settings", "", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse settings YAML", "Check settings syntax", err)
	}

	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// SaveTo writes settings to a specific path.
func SaveTo(s *Settings, path string) error {
	s.applyDefaults()

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal settings", "", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, DefaultFileMode)
}

// Validate checks settings for valid values.
func (s *Settings) Validate() error {
	switch s.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return errors.ConfigInvalid("storage.backend must be \"file\" or \"sqlite\"")
	}

	switch s.Vocabulary {
	case VocabularyTraditionalChinese, VocabularyEnglish:
	default:
		return errors.ConfigInvalid("vocabulary must be \"zh-tw\" or \"en\"")
	}

	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return errors.ConfigInvalid("log.level: " + err.Error())
	}

	checks := []func() error{
		func() error { _, err := catalog.LookupCategory(s.Defaults.Category); return err },
		func() error { _, err := catalog.LookupComplexity(s.Defaults.Complexity); return err },
		func() error { _, err := catalog.LookupTarget(s.Defaults.Target); return err },
		func() error { _, err := catalog.LookupStyle(s.Defaults.Style); return err },
		func() error { _, err := catalog.LookupLanguage(s.Defaults.Language); return err },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return errors.ConfigInvalid("defaults: " + err.Error())
		}
	}

	return nil
}

// applyDefaults sets default values for empty fields.
func (s *Settings) applyDefaults() {
	if s.Version == 0 {
		s.Version = DefaultVersion
	}
	if s.Storage.Backend == "" {
		s.Storage.Backend = BackendFile
	}
	if s.Vocabulary == "" {
		s.Vocabulary = VocabularyTraditionalChinese
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
	if s.Defaults.Category == "" {
		s.Defaults.Category = catalog.DefaultCategory
	}
	if s.Defaults.Complexity == "" {
		s.Defaults.Complexity = catalog.DefaultComplexity
	}
	if s.Defaults.Target == "" {
		s.Defaults.Target = catalog.DefaultTarget
	}
	if s.Defaults.Style == "" {
		s.Defaults.Style = catalog.DefaultStyle
	}
	if s.Defaults.Language == "" {
		s.Defaults.Language = catalog.DefaultLanguage
	}
}
