package services

import (
	"go.uber.org/zap"

	"nexus-backend/internal/domain/document"
)

// Refresher is notified after settings are written through the API so the
// in-memory cache does not wait for the file watcher.
type Refresher interface {
	Refresh() error
}

// SettingsService reads and writes the runtime settings document.
type SettingsService struct {
	store     SettingsStore
	refresher Refresher
	logger    *zap.Logger
}

// NewSettingsService creates the settings service. refresher may be nil.
func NewSettingsService(store SettingsStore, refresher Refresher, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:     store,
		refresher: refresher,
		logger:    logger,
	}
}

// Get returns the stored settings with defaults merged.
func (s *SettingsService) Get() (*document.Settings, error) {
	return s.store.LoadSettings()
}

// Update replaces the settings document and refreshes the live cache.
func (s *SettingsService) Update(settings *document.Settings) error {
	settings.Merge(document.DefaultSettings())
	if err := s.store.SaveSettings(settings); err != nil {
		return err
	}
	if s.refresher != nil {
		if err := s.refresher.Refresh(); err != nil {
			s.logger.Warn("settings cache refresh failed", zap.Error(err))
		}
	}
	return nil
}
