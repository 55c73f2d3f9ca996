package commands

import (
	"context"
)

// ReleaseTableCommandHandler returns a single table to availability.
// Release is unconditional and idempotent: whatever state the table is in,
// it comes out Available with no order, reservation or merge membership.
type ReleaseTableCommandHandler struct {
	uowFactory TableUoWFactory
}

// NewReleaseTableCommandHandler creates a handler for table release operations.
func NewReleaseTableCommandHandler(uowFactory TableUoWFactory) ReleaseTableCommandHandler {
	return ReleaseTableCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command.
func (h ReleaseTableCommandHandler) Handle(ctx context.Context, command ReleaseTableCommand) error {
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

	tableRepo := uow.TableRepository()

	aggregate, err := tableRepo.Get(ctx, command.TableID())
	if err != nil {
		return err
	}

	aggregate.Release()

	if err = tableRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
