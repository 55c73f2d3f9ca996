package services

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/table"
)

// ErrNotEnoughTablesToMerge is returned when a merge names fewer than two
// tables. A single table has nothing to merge with.
var ErrNotEnoughTablesToMerge = errors.New("merge requires at least two tables")

// TableGroupService is a domain service coordinating operations that span
// several table aggregates at once: merging tables into a group for a large
// party, splitting the group back apart, and propagating an order across the
// group's members.
//
// Business rules:
//   - A merge needs at least two tables, all Available.
//   - The first table is the group's primary; the primary records the
//     member table ids, the members point back through shared occupancy.
//   - Splitting releases every member and is idempotent.
//   - The group occupies and releases as a unit; callers persist all touched
//     aggregates in one transaction to keep the group atomic.
type TableGroupService struct{}

// NewTableGroupService creates a new TableGroupService instance.
func NewTableGroupService() TableGroupService {
	return TableGroupService{}
}

// Merge joins the given tables into one group. The first table becomes the
// primary and the group comes out Occupied with no order assigned yet; the
// caller assigns the order via PropagateOrder once it exists.
//
// Any table that is Reserved, Occupied or under maintenance fails the whole
// merge and no table is mutated.
func (s TableGroupService) Merge(tables []*table.Table, now time.Time) error {
	if len(tables) < 2 {
		return ErrNotEnoughTablesToMerge
	}

	// Check every table before mutating any, so a late failure cannot leave
	// the group half-merged.
	memberIDs := make([]kernel.UUID, 0, len(tables)-1)
	for i, t := range tables {
		if err := t.Validate(); err != nil {
			return err
		}
		if t.Status() == table.Reserved {
			return table.ErrTableAlreadyReserved
		}
		if err := t.Status().ValidateOccupy(); err != nil {
			return err
		}
		if i > 0 {
			memberIDs = append(memberIDs, t.ID())
		}
	}

	primary := tables[0]
	if err := primary.MergeAsPrimary(memberIDs, now); err != nil {
		return err
	}

	for _, member := range tables[1:] {
		if err := member.JoinMergeGroup(primary); err != nil {
			return err
		}
	}
	return nil
}

// Split dissolves a merge group by releasing every member back to Available.
// Tables already Available are left untouched, so splitting twice is safe.
func (s TableGroupService) Split(tables []*table.Table) error {
	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	for _, t := range tables {
		t.Release()
	}
	return nil
}

// PropagateOrder assigns one order to every table in the group. All tables
// must already be Occupied; this closes the merge transition window where the
// group exists but the order does not yet.
func (s TableGroupService) PropagateOrder(tables []*table.Table, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	for _, t := range tables {
		if err := t.AssignOrder(orderID); err != nil {
			return err
		}
	}
	return nil
}
