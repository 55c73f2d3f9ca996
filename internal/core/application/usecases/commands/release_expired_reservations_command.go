package commands

import (
	"errors"

	"dinein/internal/pkg/guard"
)

var ErrReleaseExpiredReservationsCommandIsNotConstructed = errors.New(
	"ReleaseExpiredReservationsCommand must be created via NewReleaseExpiredReservationsCommand constructor",
)

// ReleaseExpiredReservationsCommand triggers one sweep over reserved tables,
// releasing every hold whose window has lapsed. The sweep job issues this
// command on a fixed schedule; a sweep that finds nothing expired is a no-op.
//
// Example:
//
//	cmd := NewReleaseExpiredReservationsCommand()
//	handler := NewReleaseExpiredReservationsCommandHandler(uowFactory)
//	err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Reservation sweep failed: %v", err)
//	}
type ReleaseExpiredReservationsCommand struct {
	guard guard.ConstructorGuard
}

// NewReleaseExpiredReservationsCommand creates a new command to trigger a
// reservation sweep. This is a parameterless command.
func NewReleaseExpiredReservationsCommand() ReleaseExpiredReservationsCommand {
	return ReleaseExpiredReservationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseExpiredReservationsCommandIsNotConstructed if validation fails.
func (c *ReleaseExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(
		ErrReleaseExpiredReservationsCommandIsNotConstructed,
	)
}
