package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var (
	ErrReserveTableCommandIsNotConstructed = errors.New(
		"ReserveTableCommand must be created via NewReserveTableCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
)

// ReserveTableCommand represents a request to hold a table for an expected
// party. The hold lapses automatically after the reservation window unless
// the party is seated first.
//
// Example:
//
//	cmd, err := NewReserveTableCommand(tableID, staffID, "Asha", "98400 12345", "window seat")
//	if err != nil {
//	    return fmt.Errorf("invalid reservation data: %w", err)
//	}
//
//	handler := NewReserveTableCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to reserve table: %w", err)
//	}
type ReserveTableCommand struct { //nolint:recvcheck //using for validation
	tableID       kernel.UUID
	reservedBy    kernel.UUID
	customerName  string
	customerPhone string
	notes         string

	guard guard.ConstructorGuard
}

// NewReserveTableCommand creates a command to reserve a table.
// Validates that both identifiers are constructed and a customer name is
// given; phone and notes are optional.
func NewReserveTableCommand(
	tableID, reservedBy kernel.UUID,
	customerName, customerPhone, notes string,
) (ReserveTableCommand, error) {
	command := ReserveTableCommand{
		customerPhone: customerPhone,
		notes:         notes,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTableID(tableID),
		command.setReservedBy(reservedBy),
		command.setCustomerName(customerName),
	); err != nil {
		return ReserveTableCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReserveTableCommandIsNotConstructed if validation fails.
func (c ReserveTableCommand) Validate() error {
	return c.guard.Validate(ErrReserveTableCommandIsNotConstructed)
}

// TableID returns the table to hold.
func (c ReserveTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// ReservedBy returns the staff identity taking the reservation.
func (c ReserveTableCommand) ReservedBy() kernel.UUID {
	return c.reservedBy
}

// CustomerName returns the expected party's name.
func (c ReserveTableCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the contact phone, possibly empty.
func (c ReserveTableCommand) CustomerPhone() string {
	return c.customerPhone
}

// Notes returns free-form reservation notes, possibly empty.
func (c ReserveTableCommand) Notes() string {
	return c.notes
}

func (c *ReserveTableCommand) setTableID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.tableID = id
	return nil
}

func (c *ReserveTableCommand) setReservedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.reservedBy = id
	return nil
}

func (c *ReserveTableCommand) setCustomerName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = name
	return nil
}
