// Package service holds the business logic for the POS catalog: CRUD
// orchestration over the store and the OSM import pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campuscoffee/internal/pos/metrics"
	"campuscoffee/internal/pos/models"
	"campuscoffee/pkg/platform/sentinel"
)

// Import outcome labels for metrics.
const (
	outcomeSuccess       = "success"
	outcomeNotFound      = "not_found"
	outcomeMissingFields = "missing_fields"
	outcomeDuplicateName = "duplicate_name"
	outcomeError         = "error"
)

// Service orchestrates POS catalog operations. It holds only references to
// its collaborators; no state is shared between calls, so concurrent use is
// safe as long as the store honors its uniqueness guarantee.
type Service struct {
	store   Store
	fetcher Fetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs the POS service with its dependencies.
func New(store Store, fetcher Fetcher, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		metrics: m,
	}
}

// Clear removes all POS records.
func (s *Service) Clear(ctx context.Context) error {
	s.logger.WarnContext(ctx, "clearing all POS data")
	return s.store.Clear(ctx)
}

// GetAll returns every POS record ordered by ID.
func (s *Service) GetAll(ctx context.Context) ([]models.Pos, error) {
	s.logger.DebugContext(ctx, "retrieving all POS")
	return s.store.GetAll(ctx)
}

// GetByID returns one POS record or PosNotFoundError.
func (s *Service) GetByID(ctx context.Context, id int64) (models.Pos, error) {
	s.logger.DebugContext(ctx, "retrieving POS", "pos_id", id)
	pos, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Pos{}, &models.PosNotFoundError{ID: id}
		}
		return models.Pos{}, fmt.Errorf("get pos %d: %w", id, err)
	}
	return pos, nil
}

// Upsert persists a POS record. A zero ID is a create request; a non-zero ID
// is an update and requires the record to exist already. A name that is
// already taken surfaces as DuplicatePosNameError in either case.
func (s *Service) Upsert(ctx context.Context, pos models.Pos) (models.Pos, error) {
	if pos.ID == 0 {
		s.logger.InfoContext(ctx, "creating new POS", "name", pos.Name)
		saved, err := s.performUpsert(ctx, pos)
		if err != nil {
			return models.Pos{}, err
		}
		s.metrics.PosCreated.Inc()
		return saved, nil
	}

	s.logger.InfoContext(ctx, "updating POS", "pos_id", pos.ID)
	// The record must exist before an update.
	if _, err := s.GetByID(ctx, pos.ID); err != nil {
		return models.Pos{}, err
	}
	saved, err := s.performUpsert(ctx, pos)
	if err != nil {
		return models.Pos{}, err
	}
	s.metrics.PosUpdated.Inc()
	return saved, nil
}

// ImportFromOsmNode fetches one OSM node, converts it into a POS candidate
// and persists it as a new record. Re-importing a node never updates a
// previous import; no linkage between node ID and POS ID is kept, so a
// repeat import collides on the name uniqueness constraint instead.
func (s *Service) ImportFromOsmNode(ctx context.Context, nodeID int64) (models.Pos, error) {
	s.logger.InfoContext(ctx, "importing POS from OSM node", "node_id", nodeID)

	start := time.Now()
	node, err := s.fetcher.FetchNode(ctx, nodeID)
	s.metrics.ObserveOsmFetch(start)
	if err != nil {
		s.metrics.RecordImport(outcomeNotFound)
		return models.Pos{}, err
	}

	candidate, err := convertOsmNode(node)
	if err != nil {
		s.logger.WarnContext(ctx, "OSM node cannot back a POS record", "node_id", nodeID, "error", err)
		s.metrics.RecordImport(outcomeMissingFields)
		return models.Pos{}, err
	}

	saved, err := s.Upsert(ctx, candidate)
	if err != nil {
		s.metrics.RecordImport(importOutcome(err))
		return models.Pos{}, err
	}

	s.logger.InfoContext(ctx, "imported POS from OSM node",
		"node_id", nodeID, "pos_id", saved.ID, "name", saved.Name)
	s.metrics.RecordImport(outcomeSuccess)
	return saved, nil
}

// performUpsert delegates to the store and translates its sentinel errors
// into the domain taxonomy. The store enforces name uniqueness; a violation
// is propagated unchanged, never retried or suppressed.
func (s *Service) performUpsert(ctx context.Context, pos models.Pos) (models.Pos, error) {
	saved, err := s.store.Upsert(ctx, pos)
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.logger.ErrorContext(ctx, "POS name already taken", "name", pos.Name)
			return models.Pos{}, &models.DuplicatePosNameError{Name: pos.Name}
		}
		return models.Pos{}, fmt.Errorf("upsert pos %q: %w", pos.Name, err)
	}
	s.logger.InfoContext(ctx, "upserted POS", "pos_id", saved.ID)
	return saved, nil
}

func importOutcome(err error) string {
	var dup *models.DuplicatePosNameError
	if errors.As(err, &dup) {
		return outcomeDuplicateName
	}
	return outcomeError
}
