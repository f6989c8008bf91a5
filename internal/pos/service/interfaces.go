package service

import (
	"context"

	"campuscoffee/internal/pos/models"
)

// Store is the persistence port for POS records.
//
// Implementations own identity and timestamp assignment and enforce name
// uniqueness at the persistence boundary, reporting violations as
// sentinel.ErrAlreadyUsed. Concurrent upserts racing on the same name must
// admit exactly one winner.
type Store interface {
	// Clear removes every POS record. This is the only bulk removal path;
	// individual records are never deleted.
	Clear(ctx context.Context) error

	// GetAll returns all POS records ordered by ID.
	GetAll(ctx context.Context) ([]models.Pos, error)

	// GetByID returns the POS with the given ID or sentinel.ErrNotFound.
	GetByID(ctx context.Context, id int64) (models.Pos, error)

	// Upsert persists the record, creating it when ID is zero. The returned
	// copy carries the assigned identity and timestamps.
	Upsert(ctx context.Context, pos models.Pos) (models.Pos, error)
}

// Fetcher is the port to the OpenStreetMap node lookup.
type Fetcher interface {
	// FetchNode retrieves the tag snapshot of one OSM node. All fetch and
	// parse failures surface as models.OsmNodeNotFoundError.
	FetchNode(ctx context.Context, nodeID int64) (models.OsmNode, error)
}
