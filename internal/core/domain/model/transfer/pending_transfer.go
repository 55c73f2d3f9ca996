package transfer

import (
	"errors"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
)

var (
	// ErrPendingTransferIsNotConstructed is returned when a PendingTransfer
	// instance was not created through its factory methods.
	ErrPendingTransferIsNotConstructed = errors.New(
		"PendingTransfer must be created via NewPendingTransferFromOrder constructor")

	// ErrOrderNotTransferred is returned when deriving a projection from an
	// order that has not completed the staff-to-manager handoff.
	ErrOrderNotTransferred = errors.New("order is not in transferred status")
)

// PendingTransfer is the manager-facing projection of a transferred order.
// It snapshots everything the manager view renders so listing pending work
// never scans or joins the order table. One projection exists per order;
// orderID is the key.
type PendingTransfer struct {
	orderID     kernel.UUID
	locationID  kernel.UUID
	staffID     kernel.UUID
	orderNumber string
	orderType   order.Type

	tableIDs   []kernel.UUID
	tableNames []string

	items  []order.Item
	totals order.Totals

	transferredAt time.Time
	transferredBy kernel.UUID
	transferNotes string

	isConstructed bool
}

// NewPendingTransferFromOrder derives the projection from a transferred
// order. The order must already carry Transferred status and its handoff
// timestamps; callers flip the status first, then derive.
func NewPendingTransferFromOrder(o *order.Order) (*PendingTransfer, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Transferred {
		return nil, ErrOrderNotTransferred
	}

	pt := &PendingTransfer{
		orderID:     o.ID(),
		locationID:  o.LocationID(),
		staffID:     o.StaffID(),
		orderNumber: o.OrderNumber(),
		orderType:   o.OrderType(),
		tableIDs:    o.TableIDs(),
		tableNames:  o.TableNames(),
		items:       o.Items(),
		totals:      o.Totals(),

		transferNotes: o.TransferNotes(),
		isConstructed: true,
	}

	if at := o.TransferredAt(); at != nil {
		pt.transferredAt = *at
	}
	if by := o.TransferredBy(); by != nil {
		pt.transferredBy = *by
	}
	return pt, nil
}

// RestorePendingTransfer reconstructs a projection row from persistence.
func RestorePendingTransfer(
	orderID, locationID, staffID kernel.UUID,
	orderNumber string,
	orderType order.Type,
	tableIDs []kernel.UUID,
	tableNames []string,
	items []order.Item,
	totals order.Totals,
	transferredAt time.Time,
	transferredBy kernel.UUID,
	transferNotes string,
) (*PendingTransfer, error) {
	if err := errors.Join(
		orderID.Validate(),
		locationID.Validate(),
		staffID.Validate(),
		orderType.Validate(),
		transferredBy.Validate(),
	); err != nil {
		return nil, err
	}

	return &PendingTransfer{
		orderID:       orderID,
		locationID:    locationID,
		staffID:       staffID,
		orderNumber:   orderNumber,
		orderType:     orderType,
		tableIDs:      tableIDs,
		tableNames:    tableNames,
		items:         items,
		totals:        totals,
		transferredAt: transferredAt,
		transferredBy: transferredBy,
		transferNotes: transferNotes,
		isConstructed: true,
	}, nil
}

// Validate ensures the PendingTransfer instance was properly constructed.
func (pt *PendingTransfer) Validate() error {
	if pt == nil || !pt.isConstructed {
		return ErrPendingTransferIsNotConstructed
	}
	return nil
}

// OrderID returns the projected order's identifier, the projection key.
func (pt *PendingTransfer) OrderID() kernel.UUID {
	return pt.orderID
}

// LocationID returns the owning location's identifier.
func (pt *PendingTransfer) LocationID() kernel.UUID {
	return pt.locationID
}

// StaffID returns the staff identity that owned the order before handoff.
func (pt *PendingTransfer) StaffID() kernel.UUID {
	return pt.staffID
}

// OrderNumber returns the display order number.
func (pt *PendingTransfer) OrderNumber() string {
	return pt.orderNumber
}

// OrderType returns the fulfillment type.
func (pt *PendingTransfer) OrderType() order.Type {
	return pt.orderType
}

// TableIDs returns the ids of the tables the order occupies.
func (pt *PendingTransfer) TableIDs() []kernel.UUID {
	return pt.tableIDs
}

// TableNames returns the display names mirroring TableIDs.
func (pt *PendingTransfer) TableNames() []string {
	return pt.tableNames
}

// Items returns the line snapshot taken at handoff.
func (pt *PendingTransfer) Items() []order.Item {
	return pt.items
}

// Totals returns the monetary summary taken at handoff.
func (pt *PendingTransfer) Totals() order.Totals {
	return pt.totals
}

// TransferredAt returns when the handoff completed.
func (pt *PendingTransfer) TransferredAt() time.Time {
	return pt.transferredAt
}

// TransferredBy returns the staff identity that initiated the handoff.
func (pt *PendingTransfer) TransferredBy() kernel.UUID {
	return pt.transferredBy
}

// TransferNotes returns the notes attached at handoff, possibly empty.
func (pt *PendingTransfer) TransferNotes() string {
	return pt.transferNotes
}
