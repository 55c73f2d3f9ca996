package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/ports"
)

// AddOrderItemCommandHandler adds a catalog item to an order.
// The order is resolved durable-first with a cache fallback, mutated through
// the aggregate (which folds identical lines together and recomputes
// totals), and written back cache-first.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	catalog    ports.MenuCatalog
	logger     *slog.Logger
}

// NewAddOrderItemCommandHandler creates a handler for adding order items.
func NewAddOrderItemCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	catalog ports.MenuCatalog,
	logger *slog.Logger,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		catalog:    catalog,
		logger:     logger,
	}
}

// Handle processes the add-item command.
// A durable update that cannot land does not fail the edit: the cache copy
// is authoritative for the device and the dirty mark schedules the catch-up.
func (h AddOrderItemCommandHandler) Handle(ctx context.Context, command AddOrderItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	menuItem, err := h.catalog.Lookup(ctx, command.MenuItemID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, durable, err := resolveOrder(ctx, uow.OrderRepository(), h.cache, command.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	item, err := order.NewItem(
		kernel.NewUUID(),
		menuItem.ID,
		menuItem.Name,
		menuItem.Price,
		command.Quantity(),
		command.Modifications(),
		command.Notes(),
		command.PortionSize(),
		now,
	)
	if err != nil {
		return err
	}

	if err = aggregate.AddItem(item, now); err != nil {
		return err
	}

	return writeBackEdit(ctx, uow, h.cache, h.logger, aggregate, durable)
}
