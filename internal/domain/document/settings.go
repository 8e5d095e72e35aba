package document

// Settings is the runtime-tunable configuration stored beside the vault
// document.
type Settings struct {
	// AutoSaveInterval is the client auto-snapshot interval in minutes.
	AutoSaveInterval int `json:"autoSaveInterval"`
	// MaxVersions caps the retained snapshot history.
	MaxVersions int `json:"maxVersions"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() *Settings {
	return &Settings{
		AutoSaveInterval: 5,
		MaxVersions:      20,
	}
}

// Merge fills unset fields from defaults, mirroring how partially written
// settings files are tolerated.
func (s *Settings) Merge(defaults *Settings) {
	if s.AutoSaveInterval <= 0 {
		s.AutoSaveInterval = defaults.AutoSaveInterval
	}
	if s.MaxVersions <= 0 {
		s.MaxVersions = defaults.MaxVersions
	}
}
