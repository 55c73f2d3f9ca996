package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var ErrTransferOrderCommandIsNotConstructed = errors.New(
	"TransferOrderCommand must be created via NewTransferOrderCommand constructor",
)

// TransferOrderCommand represents a request to hand an order from staff to
// the manager role. The handoff is idempotent: retrying a transfer that
// already went through reports success instead of failing, because the
// device may retry after a timeout without knowing the first attempt landed.
//
// Example:
//
//	cmd, err := NewTransferOrderCommand(orderID, staffID, "guest in a hurry")
//	if err != nil {
//	    return fmt.Errorf("invalid transfer data: %w", err)
//	}
//
//	handler := NewTransferOrderCommandHandler(uowFactory, cache, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to transfer order: %w", err)
//	}
type TransferOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	staffID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

// NewTransferOrderCommand creates a command to transfer an order to the
// manager. Notes are optional context for the manager.
func NewTransferOrderCommand(orderID, staffID kernel.UUID, notes string) (TransferOrderCommand, error) {
	command := TransferOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setStaffID(staffID),
	); err != nil {
		return TransferOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransferOrderCommandIsNotConstructed if validation fails.
func (c TransferOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransferOrderCommandIsNotConstructed)
}

// OrderID returns the order to hand off.
func (c TransferOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StaffID returns the staff identity initiating the handoff.
func (c TransferOrderCommand) StaffID() kernel.UUID {
	return c.staffID
}

// Notes returns the handoff notes, possibly empty.
func (c TransferOrderCommand) Notes() string {
	return c.notes
}

func (c *TransferOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *TransferOrderCommand) setStaffID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.staffID = id
	return nil
}
