package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var ErrSplitTablesCommandIsNotConstructed = errors.New(
	"SplitTablesCommand must be created via NewSplitTablesCommand constructor",
)

// SplitTablesCommand represents a request to dissolve a merge group back into
// individual available tables. The group is identified by its primary table,
// which carries the membership record.
type SplitTablesCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSplitTablesCommand creates a command to split the group containing the
// given table.
func NewSplitTablesCommand(tableID kernel.UUID) (SplitTablesCommand, error) {
	command := SplitTablesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTableID(tableID); err != nil {
		return SplitTablesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSplitTablesCommandIsNotConstructed if validation fails.
func (c SplitTablesCommand) Validate() error {
	return c.guard.Validate(ErrSplitTablesCommandIsNotConstructed)
}

// TableID returns the primary table of the group to split.
func (c SplitTablesCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c *SplitTablesCommand) setTableID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.tableID = id
	return nil
}
