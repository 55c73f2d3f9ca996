package order

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line on an order: a menu item at a price, in a quantity, with
// optional modifications, notes and portion size.
//
// Two items are the same line iff menuItemID, portionSize, notes and the set
// of modifications (order-independent) all match. Adding the same line twice
// combines quantities instead of appending a duplicate.
type Item struct {
	id            kernel.UUID
	menuItemID    kernel.UUID
	name          string
	price         decimal.Decimal
	quantity      int
	modifications []string
	notes         string
	portionSize   string
	addedAt       time.Time

	isConstructed bool
}

// NewItem creates a validated line item. Price must be non-negative and
// quantity at least 1; both are rejected, not clamped.
func NewItem(
	id, menuItemID kernel.UUID,
	name string,
	price decimal.Decimal,
	quantity int,
	modifications []string,
	notes, portionSize string,
	addedAt time.Time,
) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name is required")
	}
	if price.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"price is invalid",
			fmt.Errorf("%s is negative", price.String()),
		)
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		id:            id,
		menuItemID:    menuItemID,
		name:          name,
		price:         price,
		quantity:      quantity,
		modifications: modifications,
		notes:         notes,
		portionSize:   portionSize,
		addedAt:       addedAt,
		isConstructed: true,
	}, nil
}

// maxItemQuantity bounds a single line. Larger orders come in as multiple
// lines; the bound exists to catch fat-finger input, not to model capacity.
const maxItemQuantity = 999

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the catalog identifier of the dish.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the display name captured at the time of ordering.
func (i Item) Name() string {
	return i.name
}

// Price returns the unit price captured at the time of ordering.
func (i Item) Price() decimal.Decimal {
	return i.price
}

// Quantity returns the line quantity, always at least 1.
func (i Item) Quantity() int {
	return i.quantity
}

// Modifications returns the customer's modifications, e.g. "no onion".
func (i Item) Modifications() []string {
	return i.modifications
}

// Notes returns free-form line notes, possibly empty.
func (i Item) Notes() string {
	return i.notes
}

// PortionSize returns the portion descriptor ("half", "full", ...), possibly
// empty.
func (i Item) PortionSize() string {
	return i.portionSize
}

// AddedAt returns when the line was first added.
func (i Item) AddedAt() time.Time {
	return i.addedAt
}

// LineTotal returns price × quantity, unrounded.
func (i Item) LineTotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// WithQuantity returns a copy of the line with the given quantity. The
// caller is responsible for treating non-positive quantities as removal.
func (i Item) WithQuantity(quantity int) (Item, error) {
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}

	copied := i
	copied.quantity = quantity
	return copied, nil
}

// SameLine reports whether other is the same logical line: same menu item,
// portion size, notes, and modification set regardless of order.
func (i Item) SameLine(other Item) bool {
	if !i.menuItemID.IsEqual(other.menuItemID) {
		return false
	}
	if i.portionSize != other.portionSize || i.notes != other.notes {
		return false
	}
	return equalModificationSets(i.modifications, other.modifications)
}

func equalModificationSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	sortedA := append([]string(nil), a...)
	sortedB := append([]string(nil), b...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)

	for idx := range sortedA {
		if sortedA[idx] != sortedB[idx] {
			return false
		}
	}
	return true
}
