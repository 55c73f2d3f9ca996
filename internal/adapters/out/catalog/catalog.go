// Package catalog provides in-memory implementations of the menu catalog and
// tax rate source. Menu data is loaded at startup and read-heavy afterwards;
// a map behind a RWMutex is enough, and keeping it out of the database keeps
// item lookups off the order hot path.
package catalog

import (
	"context"
	"sync"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"
	"dinein/internal/core/ports"
	"dinein/internal/pkg/errs"
)

// InMemoryMenuCatalog implements ports.MenuCatalog over a concurrent map.
type InMemoryMenuCatalog struct {
	mu    sync.RWMutex
	items map[kernel.UUID]ports.MenuItem
}

// NewInMemoryMenuCatalog creates an empty catalog.
func NewInMemoryMenuCatalog() *InMemoryMenuCatalog {
	return &InMemoryMenuCatalog{
		items: make(map[kernel.UUID]ports.MenuItem),
	}
}

// Register adds or replaces a menu item.
func (c *InMemoryMenuCatalog) Register(item ports.MenuItem) error {
	if err := item.ID.Validate(); err != nil {
		return err
	}
	if item.Name == "" {
		return errs.NewValueIsRequiredError("name is required")
	}
	if item.Price.IsNegative() {
		return errs.NewValueIsInvalidError("price is invalid")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = item
	return nil
}

// Lookup returns the menu item by id.
func (c *InMemoryMenuCatalog) Lookup(_ context.Context, menuItemID kernel.UUID) (ports.MenuItem, error) {
	if err := menuItemID.Validate(); err != nil {
		return ports.MenuItem{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[menuItemID]
	if !ok {
		return ports.MenuItem{}, errs.NewObjectNotFoundError("menu item", menuItemID.String())
	}

	return item, nil
}

// StaticTaxRateSource implements ports.TaxRateSource with per-location
// overrides over the statutory defaults. Rates change by legislation, not at
// runtime, so the table is fixed at construction.
type StaticTaxRateSource struct {
	overrides map[kernel.UUID]order.TaxRates
}

// NewStaticTaxRateSource creates a rate source with the given overrides.
// A nil map means every location uses the defaults.
func NewStaticTaxRateSource(overrides map[kernel.UUID]order.TaxRates) *StaticTaxRateSource {
	return &StaticTaxRateSource{overrides: overrides}
}

// RatesForLocation returns the location's configured rates, falling back to
// the statutory defaults.
func (s *StaticTaxRateSource) RatesForLocation(
	_ context.Context, locationID kernel.UUID,
) (order.TaxRates, error) {
	if err := locationID.Validate(); err != nil {
		return order.TaxRates{}, err
	}

	if rates, ok := s.overrides[locationID]; ok {
		return rates, nil
	}

	return order.DefaultTaxRates(), nil
}
