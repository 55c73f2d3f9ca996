package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/ports"
)

// RemoveOrderItemCommandHandler deletes a line from an order.
// Shares the resolution and the cache-first write-back policy with the other
// item edits.
type RemoveOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
}

// NewRemoveOrderItemCommandHandler creates a handler for removing order items.
func NewRemoveOrderItemCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the remove-item command.
func (h RemoveOrderItemCommandHandler) Handle(ctx context.Context, command RemoveOrderItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, durable, err := resolveOrder(ctx, uow.OrderRepository(), h.cache, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.RemoveItem(command.ItemID(), time.Now().UTC()); err != nil {
		return err
	}

	return writeBackEdit(ctx, uow, h.cache, h.logger, aggregate, durable)
}
