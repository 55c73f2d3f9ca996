// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/guard"
)

var ErrGetTablesQueryIsNotConstructed = errors.New(
	"GetTablesQuery must be created via NewGetTablesQuery constructor",
)

// GetTablesQuery retrieves the floor view for a location: every table with
// its occupancy, reservation and merge-group state.
//
// Example:
//
//	query, err := NewGetTablesQuery(locationID)
//	if err != nil {
//	    return err
//	}
//
//	tables, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve tables: %w", err)
//	}
//
//	for _, t := range tables {
//	    fmt.Printf("Table %s is %s\n", t.Name, t.Status)
//	}
type GetTablesQuery struct { //nolint:recvcheck //using for validation
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTablesQuery creates a query for a location's floor view.
func NewGetTablesQuery(locationID kernel.UUID) (GetTablesQuery, error) {
	query := GetTablesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setLocationID(locationID); err != nil {
		return GetTablesQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTablesQueryIsNotConstructed if validation fails.
func (q GetTablesQuery) Validate() error {
	return q.guard.Validate(ErrGetTablesQueryIsNotConstructed)
}

// LocationID returns the location whose tables are requested.
func (q GetTablesQuery) LocationID() kernel.UUID {
	return q.locationID
}

func (q *GetTablesQuery) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	q.locationID = locationID
	return nil
}

// GetTablesQueryResponse represents one table in the floor view read model.
// Reservation fields are populated only for reserved tables; MergedWith is
// populated only on the primary table of a merge group.
type GetTablesQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Capacity       int
	Status         string
	CurrentOrderID *kernel.UUID
	OccupiedAt     *time.Time
	CustomerName   string
	ReservedUntil  *time.Time
	MergedWith     []kernel.UUID
}
