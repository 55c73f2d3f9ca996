package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/ports"
)

// PlaceOrderCommandHandler performs the first durable persist of an order.
// Unlike item edits, the durable write here is not best-effort: if storage
// is unreachable the command fails and the order stays Temporary in the
// cache for a later retry.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for placing orders.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the place command.
// The order is read from the cache, where temporary orders live, flipped to
// Ongoing and inserted durably under its existing identity. The cache copy
// is refreshed afterwards so the fast path serves the new status.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := h.cache.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Place(time.Now().UTC()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.cache.Put(ctx, aggregate); err != nil {
		h.logger.Warn("placed order not refreshed in cache",
			"orderID", aggregate.ID().String(), "reason", err.Error())
	}

	return nil
}
