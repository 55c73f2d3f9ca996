package queries

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrderQueryIsNotConstructed = errors.New(
	"GetActiveOrderQuery must be created via NewGetActiveOrderQuery constructor",
)

// GetActiveOrderQuery retrieves the order a device is currently working on.
// This is the fast path behind the order screen: the device asks for its own
// active order on every refresh.
type GetActiveOrderQuery struct { //nolint:recvcheck //using for validation
	deviceID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrderQuery creates a query for a device's active order.
func NewGetActiveOrderQuery(deviceID kernel.UUID) (GetActiveOrderQuery, error) {
	query := GetActiveOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDeviceID(deviceID); err != nil {
		return GetActiveOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrderQueryIsNotConstructed if validation fails.
func (q GetActiveOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrderQueryIsNotConstructed)
}

// DeviceID returns the device whose active order is requested.
func (q GetActiveOrderQuery) DeviceID() kernel.UUID {
	return q.deviceID
}

func (q *GetActiveOrderQuery) setDeviceID(deviceID kernel.UUID) error {
	if err := deviceID.Validate(); err != nil {
		return err
	}

	q.deviceID = deviceID
	return nil
}

// ActiveOrderItemResponse represents one line on the device's order screen.
type ActiveOrderItemResponse struct {
	ID            kernel.UUID
	MenuItemID    kernel.UUID
	Name          string
	Price         decimal.Decimal
	Quantity      int
	LineTotal     decimal.Decimal
	Modifications []string
	Notes         string
	PortionSize   string
}

// GetActiveOrderQueryResponse is the full order snapshot for the device
// screen: lines, running GST totals, and lifecycle state.
type GetActiveOrderQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	OrderType   string
	OrderMode   string
	Status      string
	TableNames  []string
	Items       []ActiveOrderItemResponse
	Subtotal    decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	GSTAmount   decimal.Decimal
	Total       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
