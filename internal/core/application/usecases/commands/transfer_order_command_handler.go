package commands

import (
	"context"
	"log/slog"
	"time"

	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/domain/model/transfer"
	"dinein/internal/core/ports"
)

// TransferOrderCommandHandler coordinates the staff-to-manager handoff.
//
// The handoff must survive devices that retry blindly: the same command can
// arrive twice after a timeout, or arrive for an order another device already
// handed off. The handler therefore treats "already transferred" as success,
// checks for an existing projection before deriving a new one, and commits
// the status flip together with the projection write so the two can never
// diverge. Storage connectivity problems are surfaced to the caller, never
// papered over with the cache copy: a handoff must not be acknowledged
// without its durable record.
type TransferOrderCommandHandler struct {
	uowFactory TransferUoWFactory
	cache      ports.OrderCache
	logger     *slog.Logger
}

// NewTransferOrderCommandHandler creates a handler for order handoffs.
func NewTransferOrderCommandHandler(
	uowFactory TransferUoWFactory,
	cache ports.OrderCache,
	logger *slog.Logger,
) TransferOrderCommandHandler {
	return TransferOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle processes the transfer command.
func (h TransferOrderCommandHandler) Handle(ctx context.Context, command TransferOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	logger := h.logger.With("orderID", command.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, _, err := resolveOrder(ctx, uow.OrderRepository(), h.cache, command.OrderID())
	if err != nil {
		logger.Error("order resolution failed", "step", "load", "reason", err.Error())
		return err
	}

	switch aggregate.Status() {
	case order.Settled:
		// A settled order already completed its whole lifecycle; the retry
		// has nothing left to do.
		logger.Info("transfer retry on settled order ignored", "step", "idempotency")
		return nil
	case order.Transferred:
		// The earlier attempt landed. Make sure its projection exists, then
		// report success.
		logger.Info("transfer retry on transferred order", "step", "idempotency")
		return h.completeHandoff(ctx, uow, logger, aggregate, false)
	default:
	}

	if err = aggregate.TransferToManager(command.StaffID(), command.Notes(), time.Now().UTC()); err != nil {
		logger.Warn("transfer rejected", "step", "flip", "reason", err.Error())
		return err
	}

	return h.completeHandoff(ctx, uow, logger, aggregate, true)
}

// completeHandoff writes the projection (unless one already exists) and the
// order's new status in one transaction, then evicts the cache copy so the
// staff fast path stops serving a frozen order.
func (h TransferOrderCommandHandler) completeHandoff(
	ctx context.Context,
	uow TransferUoW,
	logger *slog.Logger,
	aggregate *order.Order,
	updateOrder bool,
) error {
	projectionRepo := uow.PendingTransferRepository()

	exists, err := projectionRepo.Exists(ctx, aggregate.ID())
	if err != nil {
		logger.Error("projection existence check failed", "step", "projection", "reason", err.Error())
		return err
	}

	if !exists {
		projection, deriveErr := transfer.NewPendingTransferFromOrder(aggregate)
		if deriveErr != nil {
			return deriveErr
		}

		if err = projectionRepo.Add(ctx, projection); err != nil {
			logger.Error("projection write failed", "step", "projection", "reason", err.Error())
			return err
		}
	}

	if updateOrder {
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			logger.Error("order status write failed", "step", "flip", "reason", err.Error())
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		logger.Error("handoff commit failed", "step", "commit", "reason", err.Error())
		return err
	}

	if err = h.cache.Remove(ctx, aggregate.ID()); err != nil {
		logger.Warn("transferred order not evicted from cache", "step", "evict", "reason", err.Error())
	}
	if err = h.cache.ClearDirty(ctx, aggregate.ID()); err != nil {
		logger.Warn("dirty mark not cleared after transfer", "step", "evict", "reason", err.Error())
	}

	logger.Info("order handed to manager", "step", "done")
	return nil
}
