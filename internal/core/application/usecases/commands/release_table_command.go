package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var ErrReleaseTableCommandIsNotConstructed = errors.New(
	"ReleaseTableCommand must be created via NewReleaseTableCommand constructor",
)

// ReleaseTableCommand represents a request to return a table to availability,
// dropping any occupancy, reservation or merge membership it carries.
// Releasing an already available table is a no-op, so retries are safe.
type ReleaseTableCommand struct { //nolint:recvcheck //using for validation
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseTableCommand creates a command to release a table.
func NewReleaseTableCommand(tableID kernel.UUID) (ReleaseTableCommand, error) {
	command := ReleaseTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTableID(tableID); err != nil {
		return ReleaseTableCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseTableCommandIsNotConstructed if validation fails.
func (c ReleaseTableCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTableCommandIsNotConstructed)
}

// TableID returns the table to release.
func (c ReleaseTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c *ReleaseTableCommand) setTableID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.tableID = id
	return nil
}
