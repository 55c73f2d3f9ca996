package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/ports"
)

// SettleOrderCommandHandler records payment for a transferred order.
// Settlement, not transfer, is the point where tables come free: the party
// keeps its seats while the manager processes payment. The order update and
// every table release commit together.
type SettleOrderCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
}

// NewSettleOrderCommandHandler creates a handler for settling orders.
func NewSettleOrderCommandHandler(
	uowFactory UoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) SettleOrderCommandHandler {
	return SettleOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the settle command.
// The order is read from durable storage only; a transferred order always
// has a durable record, and payment must never be recorded against a cache
// copy.
func (h SettleOrderCommandHandler) Handle(ctx context.Context, command SettleOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Settle(time.Now().UTC()); err != nil {
		return err
	}

	tableRepo := uow.TableRepository()
	for _, tableID := range aggregate.TableIDs() {
		tableAggregate, getErr := tableRepo.Get(ctx, tableID)
		if getErr != nil {
			return getErr
		}

		tableAggregate.Release()

		if updateErr := tableRepo.Update(ctx, tableAggregate); updateErr != nil {
			return updateErr
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.cache.Remove(ctx, command.OrderID()); err != nil {
		h.logger.Warn("settled order not removed from cache",
			"orderID", command.OrderID().String(), "reason", err.Error())
	}
	if err = h.cache.ClearDirty(ctx, command.OrderID()); err != nil {
		h.logger.Warn("dirty mark not cleared for settled order",
			"orderID", command.OrderID().String(), "reason", err.Error())
	}

	return nil
}
