package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/ports"
)

// CancelOrderCommandHandler abandons an order before handoff.
// Tables the order held are released, the durable record (if the order was
// ever placed) is marked Cancelled for audit, and the cache copy is dropped
// either way.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for cancelling orders.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the cancel command.
// A temporary order that never reached storage leaves no durable trace; one
// that did stays recorded with Cancelled status. Table releases and the
// order update commit together.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) error {
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

	if err = aggregate.Cancel(time.Now().UTC()); err != nil {
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

	if durable {
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dropFromCache(ctx, command)

	return nil
}

func (h CancelOrderCommandHandler) dropFromCache(ctx context.Context, command CancelOrderCommand) {
	if err := h.cache.Remove(ctx, command.OrderID()); err != nil {
		h.logger.Warn("cancelled order not removed from cache",
			"orderID", command.OrderID().String(), "reason", err.Error())
	}
	if err := h.cache.ClearActiveOrder(ctx, command.DeviceID()); err != nil {
		h.logger.Warn("active order pointer not cleared",
			"deviceID", command.DeviceID().String(), "reason", err.Error())
	}
	if err := h.cache.ClearDirty(ctx, command.OrderID()); err != nil {
		h.logger.Warn("dirty mark not cleared for cancelled order",
			"orderID", command.OrderID().String(), "reason", err.Error())
	}
}
