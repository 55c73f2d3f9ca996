package ports

import (
	"context"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// MenuItem is the catalog's view of a sellable item: the fields an order
// line snapshots at add time.
type MenuItem struct {
	ID    kernel.UUID
	Name  string
	Price decimal.Decimal
}

// MenuCatalog resolves menu items for order lines. Name and price are
// snapshotted into the line, so later catalog edits never change an existing
// order.
type MenuCatalog interface {
	// Lookup returns the menu item by id. Returns errs.ErrObjectNotFound
	// for unknown items.
	Lookup(ctx context.Context, menuItemID kernel.UUID) (MenuItem, error)
}

// TaxRateSource provides the GST rate pair an order is created under. The
// rates are captured at order start and ride with the order from then on.
type TaxRateSource interface {
	// RatesForLocation returns the location's configured rates, falling
	// back to the statutory defaults when the location has none.
	RatesForLocation(ctx context.Context, locationID kernel.UUID) (order.TaxRates, error)
}
