package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var ErrSettleOrderCommandIsNotConstructed = errors.New(
	"SettleOrderCommand must be created via NewSettleOrderCommand constructor",
)

// SettleOrderCommand represents the manager recording payment for a
// transferred order. Settling closes the lifecycle and frees every table the
// order held.
type SettleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSettleOrderCommand creates a command to settle an order.
func NewSettleOrderCommand(orderID kernel.UUID) (SettleOrderCommand, error) {
	command := SettleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return SettleOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSettleOrderCommandIsNotConstructed if validation fails.
func (c SettleOrderCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrderCommandIsNotConstructed)
}

// OrderID returns the order to settle.
func (c SettleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *SettleOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}
