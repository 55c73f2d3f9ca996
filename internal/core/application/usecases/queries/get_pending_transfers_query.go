package queries

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPendingTransfersQueryIsNotConstructed = errors.New(
	"GetPendingTransfersQuery must be created via NewGetPendingTransfersQuery constructor",
)

// GetPendingTransfersQuery retrieves the manager's work queue for a location:
// every order handed off by staff and still awaiting settlement. Projections
// whose order was settled in the meantime are filtered out.
type GetPendingTransfersQuery struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingTransfersQuery creates a query for a location's pending handoffs.
func NewGetPendingTransfersQuery(locationID kernel.UUID) (GetPendingTransfersQuery, error) {
	query := GetPendingTransfersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setLocationID(locationID); err != nil {
		return GetPendingTransfersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingTransfersQueryIsNotConstructed if validation fails.
func (q GetPendingTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingTransfersQueryIsNotConstructed)
}

// LocationID returns the location whose pending handoffs are requested.
func (q GetPendingTransfersQuery) LocationID() kernel.UUID {
	return q.locationID
}

func (q *GetPendingTransfersQuery) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	q.locationID = locationID
	return nil
}

// PendingTransferItemResponse represents one snapshotted line in a handoff.
type PendingTransferItemResponse struct {
	Name        string
	Price       decimal.Decimal
	Quantity    int
	PortionSize string
}

// GetPendingTransfersQueryResponse represents one handoff awaiting settlement.
// Totals are the values frozen at handoff time.
type GetPendingTransfersQueryResponse struct {
	OrderID       kernel.UUID
	OrderNumber   string
	TableNames    []string
	Items         []PendingTransferItemResponse
	Subtotal      decimal.Decimal
	GSTAmount     decimal.Decimal
	Total         decimal.Decimal
	TransferredAt time.Time
	TransferredBy kernel.UUID
	TransferNotes string
}
