package ports

import (
	"context"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Durable storage holds orders from their first persist (Place) onward;
// Temporary orders live only in the OrderCache until then.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInTransferredStatusByLocation retrieves a location's orders that
	// were handed to the manager and not yet settled.
	GetAllInTransferredStatusByLocation(ctx context.Context, locationID kernel.UUID) ([]*order.Order, error)

	// GetAllInSettledStatusByLocation retrieves a location's settled orders.
	GetAllInSettledStatusByLocation(ctx context.Context, locationID kernel.UUID) ([]*order.Order, error)
}
