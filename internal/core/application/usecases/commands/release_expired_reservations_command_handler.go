package commands

import (
	"context"
	"time"
)

// ReleaseExpiredReservationsCommandHandler runs one reservation sweep.
// Reads every reserved table, asks each aggregate to release only if its
// hold has actually lapsed, and persists the released ones. The aggregate
// re-checks its status at release time, so a reservation seated between the
// read and the release is left alone.
type ReleaseExpiredReservationsCommandHandler struct {
	uowFactory TableUoWFactory
}

// NewReleaseExpiredReservationsCommandHandler creates a handler for the
// reservation sweep.
func NewReleaseExpiredReservationsCommandHandler(uowFactory TableUoWFactory) ReleaseExpiredReservationsCommandHandler {
	return ReleaseExpiredReservationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one sweep. Returns the number of reservations released.
func (h ReleaseExpiredReservationsCommandHandler) Handle(
	ctx context.Context,
	command ReleaseExpiredReservationsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tableRepo := uow.TableRepository()

	reserved, err := tableRepo.GetAllInReservedStatus(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	released := 0
	for _, aggregate := range reserved {
		if !aggregate.ReleaseExpiredReservation(now) {
			continue
		}

		if err = tableRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
		released++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return released, nil
}
