package commands

import (
	"errors"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/pkg/guard"
)

var (
	ErrStartOrderCommandIsNotConstructed = errors.New(
		"StartOrderCommand must be created via NewStartOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
)

// StartOrderCommand represents a request to open a new order on a device.
// The order id is generated here, before anything durable exists, and stays
// the order's identity through its whole life. Starting a new order replaces
// whatever temporary order the device was building.
//
// Example:
//
//	cmd, err := NewStartOrderCommand(locationID, staffID, deviceID,
//	    "ORD-0042", order.DineIn, order.Tableside, []kernel.UUID{tableID})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewStartOrderCommandHandler(uowFactory, cache, rates, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start order: %w", err)
//	}
//	fmt.Printf("Started order %s", cmd.OrderID())
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	locationID  kernel.UUID
	staffID     kernel.UUID
	deviceID    kernel.UUID
	orderNumber string
	orderType   order.Type
	orderMode   order.Mode
	tableIDs    []kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartOrderCommand creates a command to open a new order.
// Automatically generates the order's identity. Dine-in orders must name at
// least one table; the aggregate enforces that on creation.
func NewStartOrderCommand(
	locationID, staffID, deviceID kernel.UUID,
	orderNumber string,
	orderType order.Type,
	orderMode order.Mode,
	tableIDs []kernel.UUID,
) (StartOrderCommand, error) {
	command := StartOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(kernel.NewUUID()),
		command.setLocationID(locationID),
		command.setStaffID(staffID),
		command.setDeviceID(deviceID),
		command.setOrderNumber(orderNumber),
		command.setKind(orderType, orderMode),
		command.setTableIDs(tableIDs),
	); err != nil {
		return StartOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartOrderCommandIsNotConstructed if validation fails.
func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// OrderID returns the generated identity of the order being started.
func (c StartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the location the order belongs to.
func (c StartOrderCommand) LocationID() kernel.UUID {
	return c.locationID
}

// StaffID returns the staff identity opening the order.
func (c StartOrderCommand) StaffID() kernel.UUID {
	return c.staffID
}

// DeviceID returns the device the order is being built on.
func (c StartOrderCommand) DeviceID() kernel.UUID {
	return c.deviceID
}

// OrderNumber returns the display order number.
func (c StartOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// OrderType returns the fulfillment type.
func (c StartOrderCommand) OrderType() order.Type {
	return c.orderType
}

// OrderMode returns the order mode.
func (c StartOrderCommand) OrderMode() order.Mode {
	return c.orderMode
}

// TableIDs returns the tables the order should occupy; empty for non-dine-in.
func (c StartOrderCommand) TableIDs() []kernel.UUID {
	return c.tableIDs
}

func (c *StartOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *StartOrderCommand) setLocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.locationID = id
	return nil
}

func (c *StartOrderCommand) setStaffID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.staffID = id
	return nil
}

func (c *StartOrderCommand) setDeviceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deviceID = id
	return nil
}

func (c *StartOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *StartOrderCommand) setKind(orderType order.Type, orderMode order.Mode) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	if err := orderMode.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	c.orderMode = orderMode
	return nil
}

func (c *StartOrderCommand) setTableIDs(tableIDs []kernel.UUID) error {
	for _, id := range tableIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.tableIDs = tableIDs
	return nil
}
