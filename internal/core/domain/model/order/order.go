package order

import (
	"errors"
	"fmt"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDineInRequiresTables is returned when a dine-in order is started
	// without any table.
	ErrDineInRequiresTables = errors.New("dine-in order requires at least one table")
)

// Order represents a staff-initiated collection of purchased items against
// one or more tables. It is the aggregate root for the order lifecycle:
// Temporary (device-local) → Ongoing (durable, staff-owned) → Transferred
// (manager-owned) → Settled, with Cancelled as the pre-transfer exit.
//
// Order follows these invariants:
//   - identity, location and staff owner are immutable
//   - dine-in orders reference at least one table
//   - totals are always recomputed from items and the tax rates; they are
//     never set directly
//   - sessionStartedAt is fixed by the first item ever added and does not
//     move on later edits
//   - status transitions are monotonic
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id          kernel.UUID
	locationID  kernel.UUID
	staffID     kernel.UUID
	orderNumber string
	orderType   Type
	orderMode   Mode

	tableIDs   []kernel.UUID
	tableNames []string

	items    []Item
	status   Status
	taxRates TaxRates
	totals   Totals

	sessionStartedAt *time.Time
	createdAt        time.Time
	updatedAt        time.Time
	transferredAt    *time.Time
	transferredBy    *kernel.UUID
	transferNotes    string
	settledAt        *time.Time
	cancelledAt      *time.Time

	isConstructed bool
}

// NewOrder creates a Temporary order with no items. The id is generated by
// the starting device and stays the order's identity through its whole life,
// including the first durable persist.
//
// Dine-in orders must name at least one table; other types may name none.
// tableNames mirrors tableIDs positionally and is captured so projections
// can render without a table lookup.
func NewOrder(
	id, locationID, staffID kernel.UUID,
	orderNumber string,
	orderType Type,
	orderMode Mode,
	tableIDs []kernel.UUID,
	tableNames []string,
	rates TaxRates,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Temporary,
		totals:        ZeroTotals(),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocationID(locationID),
		o.setStaffID(staffID),
		o.setOrderNumber(orderNumber),
		o.setKind(orderType, orderMode),
		o.setTables(orderType, tableIDs, tableNames),
		o.setTaxRates(rates),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence or a cache snapshot.
// Totals are recomputed from the restored items rather than trusted from the
// stored row, keeping the derived-only invariant even across storage.
func RestoreOrder(
	id, locationID, staffID kernel.UUID,
	orderNumber string,
	orderType Type,
	orderMode Mode,
	tableIDs []kernel.UUID,
	tableNames []string,
	items []Item,
	status Status,
	rates TaxRates,
	sessionStartedAt *time.Time,
	createdAt, updatedAt time.Time,
	transferredAt *time.Time,
	transferredBy *kernel.UUID,
	transferNotes string,
	settledAt *time.Time,
	cancelledAt *time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocationID(locationID),
		o.setStaffID(staffID),
		o.setOrderNumber(orderNumber),
		o.setKind(orderType, orderMode),
		o.setTables(orderType, tableIDs, tableNames),
		o.setTaxRates(rates),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	totals, err := CalculateTotals(items, rates)
	if err != nil {
		return nil, err
	}

	o.items = items
	o.status = status
	o.totals = totals
	o.sessionStartedAt = sessionStartedAt
	o.transferredAt = transferredAt
	o.transferredBy = transferredBy
	o.transferNotes = transferNotes
	o.settledAt = settledAt
	o.cancelledAt = cancelledAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// LocationID returns the owning location's identifier.
func (o *Order) LocationID() kernel.UUID {
	return o.locationID
}

// StaffID returns the creating staff identity, the owner until transfer.
func (o *Order) StaffID() kernel.UUID {
	return o.staffID
}

// OrderNumber returns the display-only order number. Uniqueness is not
// enforced here.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// OrderType returns the fulfillment type.
func (o *Order) OrderType() Type {
	return o.orderType
}

// OrderMode returns the order mode.
func (o *Order) OrderMode() Mode {
	return o.orderMode
}

// TableIDs returns the ids of the tables this order occupies.
func (o *Order) TableIDs() []kernel.UUID {
	return o.tableIDs
}

// TableNames returns the display names mirroring TableIDs.
func (o *Order) TableNames() []string {
	return o.tableNames
}

// Items returns the current line items.
func (o *Order) Items() []Item {
	return o.items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TaxRates returns the rate pair the totals are computed under.
func (o *Order) TaxRates() TaxRates {
	return o.taxRates
}

// Totals returns the derived monetary summary.
func (o *Order) Totals() Totals {
	return o.totals
}

// SessionStartedAt returns when the first item was ever added, or nil for an
// order that never had an item.
func (o *Order) SessionStartedAt() *time.Time {
	return o.sessionStartedAt
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransferredAt returns when the order was handed to the manager, or nil.
func (o *Order) TransferredAt() *time.Time {
	return o.transferredAt
}

// TransferredBy returns the staff identity that initiated the handoff, or nil.
func (o *Order) TransferredBy() *kernel.UUID {
	return o.transferredBy
}

// TransferNotes returns the notes attached at handoff, possibly empty.
func (o *Order) TransferNotes() string {
	return o.transferNotes
}

// SettledAt returns when payment was recorded, or nil.
func (o *Order) SettledAt() *time.Time {
	return o.settledAt
}

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// AddItem adds a line to the order. If an existing line matches per
// Item.SameLine, the quantities are combined instead of appending a
// duplicate. The first item ever added fixes sessionStartedAt. Totals are
// recomputed and updatedAt bumped on success.
func (o *Order) AddItem(item Item, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if !o.status.Editable() {
		return ErrOrderNotEditable
	}

	merged := false
	items := append([]Item(nil), o.items...)
	for idx, existing := range items {
		if existing.SameLine(item) {
			combined, err := existing.WithQuantity(existing.Quantity() + item.Quantity())
			if err != nil {
				return err
			}
			items[idx] = combined
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	totals, err := CalculateTotals(items, o.taxRates)
	if err != nil {
		return err
	}

	if o.sessionStartedAt == nil {
		started := now
		o.sessionStartedAt = &started
	}
	o.items = items
	o.totals = totals
	o.updatedAt = now
	return nil
}

// RemoveItem deletes a line by its id. Removing the last item leaves the
// status unchanged; an empty Ongoing order is legal until cancelled or added
// to again.
func (o *Order) RemoveItem(itemID kernel.UUID, now time.Time) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	if !o.status.Editable() {
		return ErrOrderNotEditable
	}

	idx := o.findItem(itemID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("item", itemID.String())
	}

	items := append([]Item(nil), o.items[:idx]...)
	items = append(items, o.items[idx+1:]...)

	totals, err := CalculateTotals(items, o.taxRates)
	if err != nil {
		return err
	}

	o.items = items
	o.totals = totals
	o.updatedAt = now
	return nil
}

// SetItemQuantity updates a line's quantity. A quantity of zero or less is
// treated as removal, not an error.
func (o *Order) SetItemQuantity(itemID kernel.UUID, quantity int, now time.Time) error {
	if quantity <= 0 {
		return o.RemoveItem(itemID, now)
	}
	if err := itemID.Validate(); err != nil {
		return err
	}
	if !o.status.Editable() {
		return ErrOrderNotEditable
	}

	idx := o.findItem(itemID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("item", itemID.String())
	}

	updated, err := o.items[idx].WithQuantity(quantity)
	if err != nil {
		return err
	}

	items := append([]Item(nil), o.items...)
	items[idx] = updated

	totals, err := CalculateTotals(items, o.taxRates)
	if err != nil {
		return err
	}

	o.items = items
	o.totals = totals
	o.updatedAt = now
	return nil
}

// Place marks the order durably persisted and staff-owned. This is the
// commit point after which other devices at the location can discover it.
func (o *Order) Place(now time.Time) error {
	newStatus, err := o.status.Place()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// TransferToManager hands the order to the manager role. transferredAt,
// transferredBy and transferNotes are set exactly once, on this transition.
func (o *Order) TransferToManager(staffID kernel.UUID, notes string, now time.Time) error {
	if err := staffID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Transfer()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.transferredAt = &now
	o.transferredBy = &staffID
	o.transferNotes = notes
	o.updatedAt = now
	return nil
}

// Settle records payment completion. Terminal.
func (o *Order) Settle(now time.Time) error {
	newStatus, err := o.status.Settle()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.settledAt = &now
	o.updatedAt = now
	return nil
}

// Cancel abandons the order before transfer. Terminal.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) findItem(itemID kernel.UUID) int {
	for idx, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return idx
		}
	}
	return -1
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLocationID(locationID kernel.UUID) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	o.locationID = locationID
	return nil
}

func (o *Order) setStaffID(staffID kernel.UUID) error {
	if err := staffID.Validate(); err != nil {
		return err
	}
	o.staffID = staffID
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setKind(orderType Type, orderMode Mode) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	if err := orderMode.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	o.orderMode = orderMode
	return nil
}

func (o *Order) setTables(orderType Type, tableIDs []kernel.UUID, tableNames []string) error {
	if orderType.OccupiesTables() && len(tableIDs) == 0 {
		return ErrDineInRequiresTables
	}
	if len(tableNames) > 0 && len(tableNames) != len(tableIDs) {
		return errs.NewValueIsInvalidErrorWithCause(
			"tableNames is invalid",
			fmt.Errorf("%d names for %d tables", len(tableNames), len(tableIDs)),
		)
	}
	for _, id := range tableIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	o.tableIDs = tableIDs
	o.tableNames = tableNames
	return nil
}

func (o *Order) setTaxRates(rates TaxRates) error {
	if err := rates.Validate(); err != nil {
		return err
	}
	o.taxRates = rates
	return nil
}
