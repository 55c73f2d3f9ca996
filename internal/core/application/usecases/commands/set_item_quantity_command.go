package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var ErrSetItemQuantityCommandIsNotConstructed = errors.New(
	"SetItemQuantityCommand must be created via NewSetItemQuantityCommand constructor",
)

// SetItemQuantityCommand represents a request to change a line's quantity.
// A quantity of zero or less removes the line; that is a deliberate part of
// the contract, not an input error.
type SetItemQuantityCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewSetItemQuantityCommand creates a command to set a line's quantity.
func NewSetItemQuantityCommand(orderID, itemID kernel.UUID, quantity int) (SetItemQuantityCommand, error) {
	command := SetItemQuantityCommand{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItemID(itemID),
	); err != nil {
		return SetItemQuantityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetItemQuantityCommandIsNotConstructed if validation fails.
func (c SetItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrSetItemQuantityCommandIsNotConstructed)
}

// OrderID returns the order to edit.
func (c SetItemQuantityCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the line to update.
func (c SetItemQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the requested quantity; zero or less means removal.
func (c SetItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *SetItemQuantityCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *SetItemQuantityCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.itemID = id
	return nil
}
