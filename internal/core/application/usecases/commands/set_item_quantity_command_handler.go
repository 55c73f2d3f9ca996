package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/ports"
)

// SetItemQuantityCommandHandler changes a line's quantity on an order.
// Shares the resolution and the cache-first write-back policy with the other
// item edits; the aggregate treats non-positive quantities as removal.
type SetItemQuantityCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
}

// NewSetItemQuantityCommandHandler creates a handler for quantity updates.
func NewSetItemQuantityCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) SetItemQuantityCommandHandler {
	return SetItemQuantityCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the set-quantity command.
func (h SetItemQuantityCommandHandler) Handle(ctx context.Context, command SetItemQuantityCommand) error {
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

	if err = aggregate.SetItemQuantity(command.ItemID(), command.Quantity(), time.Now().UTC()); err != nil {
		return err
	}

	return writeBackEdit(ctx, uow, h.cache, h.logger, aggregate, durable)
}
