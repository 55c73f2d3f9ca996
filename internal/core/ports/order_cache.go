package ports

import (
	"context"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
)

// OrderCache is the fast path for order reads and writes. Every item edit
// lands here first so the tableside flow never waits on durable storage; the
// durable write follows (immediately for Ongoing orders, at Place for
// Temporary ones) with the dirty set covering any write that could not land.
//
// Implementations own entry expiry. A cache miss is never fatal to callers
// holding a durable copy; it only costs the fast path.
type OrderCache interface {
	// Put stores an order snapshot under its id.
	Put(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order snapshot by id. Returns errs.ErrObjectNotFound
	// when no snapshot exists (expired or never cached).
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Remove drops an order snapshot. Removing a missing snapshot is not an
	// error.
	Remove(ctx context.Context, id kernel.UUID) error

	// SetActiveOrder points a device at the order it is currently building
	// or serving.
	SetActiveOrder(ctx context.Context, deviceID, orderID kernel.UUID) error

	// ActiveOrder returns the order id a device currently points at.
	// Returns errs.ErrObjectNotFound when the device has no active order.
	ActiveOrder(ctx context.Context, deviceID kernel.UUID) (kernel.UUID, error)

	// ClearActiveOrder drops a device's active-order pointer.
	ClearActiveOrder(ctx context.Context, deviceID kernel.UUID) error

	// MarkDirty records that an order's durable copy is behind its cached
	// copy. The sync job drains this set.
	MarkDirty(ctx context.Context, orderID kernel.UUID) error

	// DirtyOrderIDs returns every order currently marked dirty.
	DirtyOrderIDs(ctx context.Context) ([]kernel.UUID, error)

	// ClearDirty removes an order from the dirty set once its durable copy
	// caught up.
	ClearDirty(ctx context.Context, orderID kernel.UUID) error
}
