// Package ports defines the contracts between the application core and
// infrastructure: repositories over durable storage, the device-local order
// cache, and lookup sources for menu and tax data. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for table aggregates.
// Provides methods for storing, retrieving, and querying table entities
// with their occupancy, reservation and merge-group state.
type TableRepository interface {
	// Add persists a new table aggregate to storage.
	// The table must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *table.Table) error

	// Update persists changes to an existing table aggregate.
	// The table must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetAllByLocation retrieves every table registered at a location.
	// Used by the floor view; ordering is by table name.
	GetAllByLocation(ctx context.Context, locationID kernel.UUID) ([]*table.Table, error)

	// GetAllInReservedStatus retrieves every reserved table across all
	// locations. Used by the reservation sweep to find candidates whose
	// hold may have lapsed.
	GetAllInReservedStatus(ctx context.Context) ([]*table.Table, error)
}
