// Package services holds the application layer: each service serializes a
// read snapshot -> engine function -> atomic save sequence over the
// document store. Engine functions never touch storage themselves.
package services

import "nexus-backend/internal/domain/document"

// DocumentStore is the persistence contract for the vault document.
type DocumentStore interface {
	LoadDocument() (*document.Document, error)
	SaveDocument(*document.Document) error
}

// VersionStore is the persistence contract for the snapshot history.
type VersionStore interface {
	LoadVersions() ([]document.Version, error)
	SaveVersions([]document.Version) error
}

// SettingsStore is the persistence contract for the settings document.
type SettingsStore interface {
	LoadSettings() (*document.Settings, error)
	SaveSettings(*document.Settings) error
}
