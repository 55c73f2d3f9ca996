package queries

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetSettledOrdersQueryIsNotConstructed = errors.New(
	"GetSettledOrdersQuery must be created via NewGetSettledOrdersQuery constructor",
)

// GetSettledOrdersQuery retrieves a location's settled orders for the day
// book: order number, who carried it, and the final GST breakdown.
type GetSettledOrdersQuery struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSettledOrdersQuery creates a query for a location's settled orders.
func NewGetSettledOrdersQuery(locationID kernel.UUID) (GetSettledOrdersQuery, error) {
	query := GetSettledOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setLocationID(locationID); err != nil {
		return GetSettledOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSettledOrdersQueryIsNotConstructed if validation fails.
func (q GetSettledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSettledOrdersQueryIsNotConstructed)
}

// LocationID returns the location whose settled orders are requested.
func (q GetSettledOrdersQuery) LocationID() kernel.UUID {
	return q.locationID
}

func (q *GetSettledOrdersQuery) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	q.locationID = locationID
	return nil
}

// GetSettledOrdersQueryResponse represents one settled order in the day book.
type GetSettledOrdersQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	StaffID     kernel.UUID
	TableNames  []string
	Subtotal    decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	Total       decimal.Decimal
	SettledAt   time.Time
}
