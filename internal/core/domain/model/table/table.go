package table

import (
	"errors"
	"fmt"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/errs"
)

var (
	// ErrTableIsNotConstructed is returned when a Table instance was not
	// created through the NewTable or RestoreTable factory methods.
	ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")

	// ErrTableAlreadyOccupied is returned when reserving a table that
	// currently carries an order.
	ErrTableAlreadyOccupied = errors.New("table is already occupied")

	// ErrTableAlreadyReserved is returned when reserving a table that is
	// already held for another guest.
	ErrTableAlreadyReserved = errors.New("table is already reserved")

	// ErrTableUnderMaintenance is returned when reserving or seating a table
	// taken out of service.
	ErrTableUnderMaintenance = errors.New("table is under maintenance")

	// ErrTableNotOccupied is returned when assigning an order to a table that
	// is not in Occupied status.
	ErrTableNotOccupied = errors.New("table is not occupied")
)

// Table represents a physical seating unit at a location. It is the aggregate
// root for occupancy state: reservations, seating, and merge-group
// membership.
//
// Table follows these invariants:
//   - locationID is immutable once set
//   - capacity is positive
//   - Reserved status implies a reservation with an expiry is present
//   - Occupied status implies a current order id, except in the brief window
//     after a merge, before the caller associates an order with the group
//   - mergedWith is non-empty only on the primary table of a merge group
//   - can only be created through NewTable or RestoreTable
type Table struct {
	id         kernel.UUID
	locationID kernel.UUID
	name       string
	capacity   int

	status         Status
	currentOrderID *kernel.UUID
	occupiedAt     *time.Time
	reservation    *Reservation
	mergedWith     []kernel.UUID

	isConstructed bool
}

// NewTable creates an available table with validation. Location setup is the
// only caller; everything after creation goes through the lifecycle methods.
func NewTable(id, locationID kernel.UUID, name string, capacity int) (*Table, error) {
	t := &Table{
		status:        Available,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setLocationID(locationID),
		t.setName(name),
		t.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTable reconstructs a table from persistence. The restored state is
// checked against the occupancy invariants: a Reserved table must carry a
// reservation, and only an Occupied table may carry an order id or merge
// members.
func RestoreTable(
	id, locationID kernel.UUID,
	name string,
	capacity int,
	status Status,
	currentOrderID *kernel.UUID,
	occupiedAt *time.Time,
	reservation *Reservation,
	mergedWith []kernel.UUID,
) (*Table, error) {
	t := &Table{
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setLocationID(locationID),
		t.setName(name),
		t.setCapacity(capacity),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status == Reserved && reservation == nil {
		return nil, errs.NewValueIsRequiredError("reservation is required for a reserved table")
	}
	if status != Occupied && currentOrderID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"currentOrderID is invalid",
			fmt.Errorf("%s table cannot carry an order", status.String()),
		)
	}
	if status != Occupied && len(mergedWith) > 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"mergedWith is invalid",
			fmt.Errorf("%s table cannot head a merge group", status.String()),
		)
	}
	if currentOrderID != nil {
		if err := currentOrderID.Validate(); err != nil {
			return nil, err
		}
	}
	if reservation != nil {
		if err := reservation.Validate(); err != nil {
			return nil, err
		}
	}

	t.status = status
	t.currentOrderID = currentOrderID
	t.occupiedAt = occupiedAt
	t.reservation = reservation
	t.mergedWith = mergedWith
	return t, nil
}

// Validate ensures the Table instance was properly constructed.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// IsEqual compares two tables by their unique identifiers.
func (t *Table) IsEqual(other *Table) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// LocationID returns the owning location's identifier.
func (t *Table) LocationID() kernel.UUID {
	return t.locationID
}

// Name returns the display name, e.g. "T1".
func (t *Table) Name() string {
	return t.name
}

// Capacity returns the number of seats.
func (t *Table) Capacity() int {
	return t.capacity
}

// Status returns the current occupancy status.
func (t *Table) Status() Status {
	return t.status
}

// CurrentOrderID returns the id of the order seated at this table.
// Returns nil unless the table is occupied.
func (t *Table) CurrentOrderID() *kernel.UUID {
	return t.currentOrderID
}

// OccupiedAt returns the time the table was last seated, or nil.
func (t *Table) OccupiedAt() *time.Time {
	return t.occupiedAt
}

// Reservation returns the active reservation, or nil.
func (t *Table) Reservation() *Reservation {
	return t.reservation
}

// MergedWith returns the member table ids when this table is the primary of
// a merge group. Empty for standalone tables and for group members.
func (t *Table) MergedWith() []kernel.UUID {
	return t.mergedWith
}

// Reserve puts a hold on the table for the given guest, starting at now.
// Only an available table can be reserved; occupied, reserved and
// maintenance tables each report their own error so the caller can re-fetch
// and retry or inform the user.
func (t *Table) Reserve(reservedBy kernel.UUID, customerName, customerPhone, notes string, now time.Time) error {
	newStatus, err := t.status.Reserve()
	if err != nil {
		return err
	}

	reservation, err := NewReservation(reservedBy, customerName, customerPhone, notes, now)
	if err != nil {
		return err
	}

	t.status = newStatus
	t.reservation = &reservation
	return nil
}

// Occupy seats an order at the table. Allowed from Available and from
// Reserved, in which case the reservation is consumed. The order id becomes
// the table's current order and the reservation fields are cleared.
func (t *Table) Occupy(orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	newStatus, err := t.status.Occupy()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.currentOrderID = &orderID
	t.occupiedAt = &now
	t.reservation = nil
	return nil
}

// Release frees the table. It is idempotent: releasing an available table is
// a no-op. All occupancy, reservation and merge-group state is cleared.
func (t *Table) Release() {
	t.status = Available
	t.currentOrderID = nil
	t.occupiedAt = nil
	t.reservation = nil
	t.mergedWith = nil
}

// MergeAsPrimary turns this table into the head of a merge group. The table
// must be available. The group occupies immediately; the order id is
// associated afterwards by the caller via AssignOrder, which is the one
// window where an occupied table legitimately has no order.
func (t *Table) MergeAsPrimary(memberIDs []kernel.UUID, now time.Time) error {
	if err := t.status.ValidateOccupy(); err != nil {
		return err
	}
	if t.status == Reserved {
		// Merging never consumes a reservation; only truly free tables join.
		return ErrTableAlreadyReserved
	}
	for _, id := range memberIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	t.status = Occupied
	t.occupiedAt = &now
	t.reservation = nil
	t.mergedWith = memberIDs
	return nil
}

// JoinMergeGroup makes this table a member of the group headed by primary.
// The member adopts the primary's status, order and seating time so that a
// read of any group member reflects the group's occupancy.
func (t *Table) JoinMergeGroup(primary *Table) error {
	if err := primary.Validate(); err != nil {
		return err
	}
	if t.status != Available {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s table cannot join a merge group", t.status.String()),
		)
	}

	t.status = primary.status
	t.currentOrderID = primary.currentOrderID
	t.occupiedAt = primary.occupiedAt
	t.reservation = nil
	return nil
}

// AssignOrder associates an order with an occupied table. Used to propagate
// the order id to every member of a merge group once the order exists.
func (t *Table) AssignOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if t.status != Occupied {
		return ErrTableNotOccupied
	}

	t.currentOrderID = &orderID
	return nil
}

// ReleaseExpiredReservation releases the table only when it is still
// reserved and the reservation has lapsed as of now. The status re-check
// makes the sweep safe against a reserve→occupy transition that landed
// between the sweep's read and this call.
func (t *Table) ReleaseExpiredReservation(now time.Time) bool {
	if t.status != Reserved || t.reservation == nil {
		return false
	}
	if !t.reservation.Expired(now) {
		return false
	}

	t.Release()
	return true
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	t.locationID = locationID
	return nil
}

func (t *Table) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	t.name = name
	return nil
}

func (t *Table) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid", fmt.Errorf("%d is not greater than 0", capacity))
	}
	t.capacity = capacity
	return nil
}
