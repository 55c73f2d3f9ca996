package commands

import (
	"context"

	"dinein/internal/core/domain/model/table"
	"dinein/internal/core/domain/services"
)

// SplitTablesCommandHandler dissolves a merge group.
// Every member of the group is released back to Available in one
// transaction. Splitting a table that belongs to no group releases just that
// table, and splitting an already available table is a no-op, so the
// operation is safe to retry.
type SplitTablesCommandHandler struct {
	uowFactory TableUoWFactory
}

// NewSplitTablesCommandHandler creates a handler for table split operations.
func NewSplitTablesCommandHandler(uowFactory TableUoWFactory) SplitTablesCommandHandler {
	return SplitTablesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the split command.
// The group membership is read from the primary table's merge record.
func (h SplitTablesCommandHandler) Handle(ctx context.Context, command SplitTablesCommand) error {
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

	tables := []*table.Table{aggregate}
	for _, memberID := range aggregate.MergedWith() {
		if memberID.IsEqual(aggregate.ID()) {
			continue
		}

		member, err := tableRepo.Get(ctx, memberID)
		if err != nil {
			return err
		}
		tables = append(tables, member)
	}

	if err = services.NewTableGroupService().Split(tables); err != nil {
		return err
	}

	for _, member := range tables {
		if err = tableRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
