package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var (
	ErrMergeTablesCommandIsNotConstructed = errors.New(
		"MergeTablesCommand must be created via NewMergeTablesCommand constructor",
	)
	ErrNotEnoughTableIDs = errors.New("merge requires at least two table ids")
	ErrDuplicateTableIDs = errors.New("merge table ids must be distinct")
)

// MergeTablesCommand represents a request to join several tables into one
// group for a large party. The first id names the primary table; the group
// seats and settles as a unit until split.
//
// Example:
//
//	cmd, err := NewMergeTablesCommand([]kernel.UUID{t1, t2, t3})
//	if err != nil {
//	    return fmt.Errorf("invalid merge request: %w", err)
//	}
//
//	handler := NewMergeTablesCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to merge tables: %w", err)
//	}
type MergeTablesCommand struct { //nolint:recvcheck //using for validation
	tableIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewMergeTablesCommand creates a command to merge the named tables.
// At least two distinct, constructed ids are required.
func NewMergeTablesCommand(tableIDs []kernel.UUID) (MergeTablesCommand, error) {
	command := MergeTablesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTableIDs(tableIDs); err != nil {
		return MergeTablesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMergeTablesCommandIsNotConstructed if validation fails.
func (c MergeTablesCommand) Validate() error {
	return c.guard.Validate(ErrMergeTablesCommandIsNotConstructed)
}

// TableIDs returns the tables to merge; the first is the primary.
func (c MergeTablesCommand) TableIDs() []kernel.UUID {
	return c.tableIDs
}

func (c *MergeTablesCommand) setTableIDs(tableIDs []kernel.UUID) error {
	if len(tableIDs) < 2 {
		return ErrNotEnoughTableIDs
	}

	for _, id := range tableIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	for i, id := range tableIDs {
		if kernel.ContainsUUID(tableIDs[i+1:], id) {
			return ErrDuplicateTableIDs
		}
	}

	c.tableIDs = tableIDs
	return nil
}
