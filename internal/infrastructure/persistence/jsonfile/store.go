// Package jsonfile implements the vault's document store as JSON files in
// a data directory, with atomic replace semantics.
//
// Each named document is written by marshaling to a temporary file and
// renaming it over the target, so readers never observe a partial write.
// The store is a plain handle constructed once at process start; nothing
// in this package keeps global state.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"nexus-backend/internal/domain/document"
	"nexus-backend/pkg/observability"
)

const (
	dataFile     = "data.json"
	versionsFile = "versions.json"
	settingsFile = "settings.json"
)

// Store persists the vault document, version history, and settings.
type Store struct {
	dir     string
	logger  *zap.Logger
	metrics *observability.Collector
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *zap.Logger, metrics *observability.Collector) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: logger, metrics: metrics}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// SettingsPath returns the settings file path, for the settings watcher.
func (s *Store) SettingsPath() string {
	return filepath.Join(s.dir, settingsFile)
}

// LoadDocument reads the vault document, returning the default document
// when none has been written yet. The result is normalized.
func (s *Store) LoadDocument() (*document.Document, error) {
	doc := document.Default()
	if err := s.load(dataFile, doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return doc, nil
}

// SaveDocument atomically replaces the vault document.
func (s *Store) SaveDocument(doc *document.Document) error {
	return s.save(dataFile, doc)
}

// LoadVersions reads the snapshot history, oldest last.
func (s *Store) LoadVersions() ([]document.Version, error) {
	versions := []document.Version{}
	if err := s.load(versionsFile, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// SaveVersions atomically replaces the snapshot history.
func (s *Store) SaveVersions(versions []document.Version) error {
	return s.save(versionsFile, versions)
}

// LoadSettings reads the settings document with defaults merged in.
func (s *Store) LoadSettings() (*document.Settings, error) {
	settings := document.DefaultSettings()
	if err := s.load(settingsFile, settings); err != nil {
		return nil, err
	}
	settings.Merge(document.DefaultSettings())
	return settings, nil
}

// SaveSettings atomically replaces the settings document.
func (s *Store) SaveSettings(settings *document.Settings) error {
	return s.save(settingsFile, settings)
}

// load decodes the named file into target. A missing file leaves target
// at its caller-supplied default.
func (s *Store) load(name string, target interface{}) error {
	start := time.Now()
	err := s.loadFile(name, target)
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("load:"+name, err, time.Since(start))
	}
	return err
}

func (s *Store) loadFile(name string, target interface{}) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Error("corrupt document on disk",
			zap.String("file", name),
			zap.Error(err),
		)
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// save writes the value to a temp file and renames it over the target.
func (s *Store) save(name string, value interface{}) error {
	start := time.Now()
	err := s.saveFile(name, value)
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("save:"+name, err, time.Since(start))
	}
	return err
}

func (s *Store) saveFile(name string, value interface{}) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
