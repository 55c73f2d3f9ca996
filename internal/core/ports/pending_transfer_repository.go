package ports

import (
	"context"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/transfer"
)

// PendingTransferRepository defines the persistence contract for the
// manager-facing transfer projection. Rows are keyed by order id; at most one
// projection exists per order.
type PendingTransferRepository interface {
	// Add persists a new projection row.
	Add(ctx context.Context, projection *transfer.PendingTransfer) error

	// Get retrieves the projection for an order.
	Get(ctx context.Context, orderID kernel.UUID) (*transfer.PendingTransfer, error)

	// Exists reports whether a projection already exists for the order.
	// The transfer coordinator checks this before deriving a new one so
	// retried handoffs stay idempotent.
	Exists(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetAllByLocation retrieves a location's pending projections, newest
	// handoff first.
	GetAllByLocation(ctx context.Context, locationID kernel.UUID) ([]*transfer.PendingTransfer, error)
}
