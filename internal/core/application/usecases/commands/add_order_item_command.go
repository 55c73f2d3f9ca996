package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var (
	ErrAddOrderItemCommandIsNotConstructed = errors.New(
		"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// AddOrderItemCommand represents a request to add a menu item to an order.
// The item's name and price are resolved from the catalog at handling time
// and snapshotted into the line; later catalog edits never change the order.
//
// Example:
//
//	cmd, err := NewAddOrderItemCommand(orderID, menuItemID, 2,
//	    []string{"extra sambar"}, "", "full")
//	if err != nil {
//	    return fmt.Errorf("invalid item data: %w", err)
//	}
//
//	handler := NewAddOrderItemCommandHandler(uowFactory, cache, catalog, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add item: %w", err)
//	}
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	menuItemID    kernel.UUID
	quantity      int
	modifications []string
	notes         string
	portionSize   string

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to add an item to an order.
// Modifications, notes and portion size are optional and become part of the
// line identity: lines differing in any of them stay separate.
func NewAddOrderItemCommand(
	orderID, menuItemID kernel.UUID,
	quantity int,
	modifications []string,
	notes, portionSize string,
) (AddOrderItemCommand, error) {
	command := AddOrderItemCommand{
		modifications: modifications,
		notes:         notes,
		portionSize:   portionSize,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setMenuItemID(menuItemID),
		command.setQuantity(quantity),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddOrderItemCommandIsNotConstructed if validation fails.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the order to add the item to.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MenuItemID returns the catalog item being added.
func (c AddOrderItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Quantity returns how many units to add.
func (c AddOrderItemCommand) Quantity() int {
	return c.quantity
}

// Modifications returns the requested item modifications, possibly empty.
func (c AddOrderItemCommand) Modifications() []string {
	return c.modifications
}

// Notes returns the free-form line notes, possibly empty.
func (c AddOrderItemCommand) Notes() string {
	return c.notes
}

// PortionSize returns the portion size, possibly empty.
func (c AddOrderItemCommand) PortionSize() string {
	return c.portionSize
}

func (c *AddOrderItemCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AddOrderItemCommand) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.menuItemID = id
	return nil
}

func (c *AddOrderItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
