package commands

import (
	"context"
	"errors"
	"log/slog"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"
)

// resolveOrder loads an order durable-first with a cache fallback.
// Temporary orders exist only in the cache, so a durable miss falls through
// to it; any other durable failure is surfaced untouched. The second return
// reports whether a durable copy exists, which decides the write-back path.
func resolveOrder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	cache ports.OrderCache,
	orderID kernel.UUID,
) (*order.Order, bool, error) {
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err == nil {
		return aggregate, true, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	aggregate, err = cache.Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	return aggregate, false, nil
}

// writeBackEdit lands an item edit. The cache write comes first and must
// succeed so the device's next read sees the edit; the durable update is
// best-effort, with a dirty mark handing the catch-up to the sync job when
// the update or its commit fails. The caller's deferred rollback covers the
// abandoned transaction in that case.
func writeBackEdit(
	ctx context.Context,
	uow OrderUoW,
	cache ports.OrderCache,
	logger *slog.Logger,
	aggregate *order.Order,
	durable bool,
) error {
	if err := cache.Put(ctx, aggregate); err != nil {
		return err
	}

	if !durable {
		return nil
	}

	err := uow.OrderRepository().Update(ctx, aggregate)
	if err == nil {
		err = uow.Commit(ctx)
	}
	if err != nil {
		logger.Warn("durable order update deferred to sync",
			"orderID", aggregate.ID().String(), "reason", err.Error())

		if markErr := cache.MarkDirty(ctx, aggregate.ID()); markErr != nil {
			return markErr
		}
	}

	return nil
}
