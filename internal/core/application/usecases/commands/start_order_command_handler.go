package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/domain/model/table"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"
)

// StartOrderCommandHandler opens a new order on a device.
// The order starts Temporary: it lives in the cache only and nothing durable
// is written for it until Place. Tables, however, are seated durably right
// away so other devices see the floor change immediately.
type StartOrderCommandHandler struct {
	uowFactory TableUoWFactory
	cache      ports.OrderCache
	rateSource ports.TaxRateSource
	logger     *slog.Logger
}

// NewStartOrderCommandHandler creates a handler for opening orders.
func NewStartOrderCommandHandler(
	uowFactory TableUoWFactory,
	cache ports.OrderCache,
	rateSource ports.TaxRateSource,
	logger *slog.Logger,
) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		rateSource: rateSource,
		logger:     logger,
	}
}

// Handle processes the start command.
//
// For dine-in orders each named table is seated in one transaction; a table
// that refuses occupancy (taken by another device in the meantime) is logged
// and skipped rather than failing the order. Tables of a freshly merged
// group are already Occupied and waiting for an order, so they receive this
// order instead of being skipped. The device's previous temporary
// order, if any, is dropped from the cache before the new one is stored and
// marked active.
func (h StartOrderCommandHandler) Handle(ctx context.Context, command StartOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	rates, err := h.rateSource.RatesForLocation(ctx, command.LocationID())
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

	tableRepo := uow.TableRepository()

	now := time.Now().UTC()
	tableNames := make([]string, 0, len(command.TableIDs()))
	for _, tableID := range command.TableIDs() {
		aggregate, getErr := tableRepo.Get(ctx, tableID)
		if getErr != nil {
			return getErr
		}
		tableNames = append(tableNames, aggregate.Name())

		if occupyErr := aggregate.Occupy(command.OrderID(), now); occupyErr != nil {
			// A freshly merged group sits Occupied with no order yet.
			// Starting the order on such a table closes that window by
			// assigning the order instead of re-seating.
			if aggregate.Status() != table.Occupied || aggregate.CurrentOrderID() != nil {
				h.logger.Warn("table not seated for new order",
					"orderID", command.OrderID().String(),
					"tableID", tableID.String(),
					"reason", occupyErr.Error())
				continue
			}

			if assignErr := aggregate.AssignOrder(command.OrderID()); assignErr != nil {
				return assignErr
			}
		}

		if updateErr := tableRepo.Update(ctx, aggregate); updateErr != nil {
			return updateErr
		}
	}

	aggregate, err := order.NewOrder(
		command.OrderID(),
		command.LocationID(),
		command.StaffID(),
		command.OrderNumber(),
		command.OrderType(),
		command.OrderMode(),
		command.TableIDs(),
		tableNames,
		rates,
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dropPreviousTemporary(ctx, command)

	if err = h.cache.Put(ctx, aggregate); err != nil {
		return err
	}
	if err = h.cache.SetActiveOrder(ctx, command.DeviceID(), command.OrderID()); err != nil {
		return err
	}

	return nil
}

// dropPreviousTemporary removes the device's prior order from the cache when
// that order never reached durable storage. An Ongoing or later order is
// left cached; only its active-pointer is about to be overwritten.
func (h StartOrderCommandHandler) dropPreviousTemporary(ctx context.Context, command StartOrderCommand) {
	prevID, err := h.cache.ActiveOrder(ctx, command.DeviceID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return
	}
	if err != nil {
		h.logger.Warn("previous active order lookup failed",
			"deviceID", command.DeviceID().String(), "reason", err.Error())
		return
	}

	prev, err := h.cache.Get(ctx, prevID)
	if err != nil {
		return
	}
	if prev.Status() != order.Temporary {
		return
	}

	if err = h.cache.Remove(ctx, prevID); err != nil {
		h.logger.Warn("abandoned temporary order not removed from cache",
			"orderID", prevID.String(), "reason", err.Error())
	}
}
