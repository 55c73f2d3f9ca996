package commands

import (
	"context"
	"time"

	"dinein/internal/core/domain/model/table"
	"dinein/internal/core/domain/services"
)

// MergeTablesCommandHandler joins tables into one occupied group.
// All member tables are loaded, merged through the TableGroupService and
// persisted in a single transaction, so the merge is atomic from the
// caller's view: either the whole group forms or no table changes.
type MergeTablesCommandHandler struct {
	uowFactory TableUoWFactory
}

// NewMergeTablesCommandHandler creates a handler for table merge operations.
func NewMergeTablesCommandHandler(uowFactory TableUoWFactory) MergeTablesCommandHandler {
	return MergeTablesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the merge command.
// Any member that is reserved, occupied or under maintenance fails the whole
// merge; the transaction rolls back and every table keeps its prior state.
func (h MergeTablesCommandHandler) Handle(ctx context.Context, command MergeTablesCommand) error {
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

	tables := make([]*table.Table, 0, len(command.TableIDs()))
	for _, id := range command.TableIDs() {
		aggregate, err := tableRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		tables = append(tables, aggregate)
	}

	if err := services.NewTableGroupService().Merge(tables, time.Now().UTC()); err != nil {
		return err
	}

	for _, aggregate := range tables {
		if err := tableRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
