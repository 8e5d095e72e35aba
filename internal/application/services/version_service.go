package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-backend/internal/domain/document"
	apperrors "nexus-backend/pkg/errors"
	"nexus-backend/pkg/observability"
)

// VersionService owns the snapshot history. New snapshots prepend and the
// list is truncated to the retention cap on every write; the cap is read
// from the live settings at snapshot time, so a changed cap applies
// without a restart.
type VersionService struct {
	store    VersionStore
	settings func() *document.Settings
	logger   *zap.Logger
	metrics  *observability.Collector
	mu       sync.Mutex
}

// NewVersionService creates the version service. settings supplies the
// current retention configuration on demand.
func NewVersionService(store VersionStore, settings func() *document.Settings, logger *zap.Logger, metrics *observability.Collector) *VersionService {
	return &VersionService{
		store:    store,
		settings: settings,
		logger:   logger,
		metrics:  metrics,
	}
}

// List returns the snapshot history, newest first.
func (s *VersionService) List() ([]document.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadVersions()
}

// Create snapshots the supplied state under the given label and enforces
// the retention cap.
func (s *VersionService) Create(state *document.Document, label string) (*document.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return nil, apperrors.NewMissingInputError("state")
	}
	if label == "" {
		label = "Manual Save"
	}

	versions, err := s.store.LoadVersions()
	if err != nil {
		return nil, err
	}

	serialized, err := json.Marshal(state)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to serialize state").WithCause(err)
	}

	now := time.Now().UnixMilli()
	version := document.Version{
		ID:        newVersionID(now),
		Timestamp: now,
		Label:     label,
		Data:      state,
		Size:      int64(len(serialized)),
	}

	versions = append([]document.Version{version}, versions...)
	if limit := s.settings().MaxVersions; len(versions) > limit {
		versions = versions[:limit]
	}

	if err := s.store.SaveVersions(versions); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SnapshotsCreated.Inc()
	}
	s.logger.Info("snapshot created",
		zap.String("versionID", version.ID),
		zap.String("label", label),
		zap.Int64("size", version.Size),
	)
	return &version, nil
}

// Delete removes one snapshot by ID.
func (s *VersionService) Delete(versionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.store.LoadVersions()
	if err != nil {
		return err
	}

	kept := make([]document.Version, 0, len(versions))
	for _, v := range versions {
		if v.ID != versionID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(versions) {
		return apperrors.NewNotFoundError("version", versionID)
	}
	return s.store.SaveVersions(kept)
}

// newVersionID builds a sortable unique ID: unix millis plus a short
// random suffix.
func newVersionID(millis int64) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%d_%s", millis, suffix)
}
