package commands

import (
	"context"
	"time"
)

// ReserveTableCommandHandler places a time-bound hold on a table.
// The table aggregate enforces that only available tables can be reserved;
// occupied, already reserved and maintenance tables refuse the hold.
type ReserveTableCommandHandler struct {
	uowFactory TableUoWFactory
}

// NewReserveTableCommandHandler creates a handler for table reservations.
func NewReserveTableCommandHandler(uowFactory TableUoWFactory) ReserveTableCommandHandler {
	return ReserveTableCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reservation command.
// Loads the table, applies the hold with the standard expiry window and
// persists the result in one transaction.
func (h ReserveTableCommandHandler) Handle(ctx context.Context, command ReserveTableCommand) error {
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

	if err = aggregate.Reserve(
		command.ReservedBy(),
		command.CustomerName(),
		command.CustomerPhone(),
		command.Notes(),
		time.Now().UTC(),
	); err != nil {
		return err
	}

	if err = tableRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
