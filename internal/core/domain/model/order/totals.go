package order

import (
	"fmt"

	"dinein/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TaxRates is the GST percentage pair applied to an order: central (CGST)
// and state (SGST) components. Rates come from location settings; absent a
// configured pair, DefaultTaxRates applies.
type TaxRates struct {
	cgstPct decimal.Decimal
	sgstPct decimal.Decimal

	isConstructed bool
}

// NewTaxRates creates a validated rate pair. Each percentage must lie in
// [0, 100].
func NewTaxRates(cgstPct, sgstPct decimal.Decimal) (TaxRates, error) {
	hundred := decimal.NewFromInt(100)
	for name, pct := range map[string]decimal.Decimal{"cgstPct": cgstPct, "sgstPct": sgstPct} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return TaxRates{}, errs.NewValueIsOutOfRangeError(name, pct.String(), "0", "100")
		}
	}

	return TaxRates{
		cgstPct:       cgstPct,
		sgstPct:       sgstPct,
		isConstructed: true,
	}, nil
}

// DefaultTaxRates returns the 2.5/2.5 pair used when a location has no
// configured rates.
func DefaultTaxRates() TaxRates {
	rates, _ := NewTaxRates(decimal.NewFromFloat(2.5), decimal.NewFromFloat(2.5))
	return rates
}

// Validate ensures the TaxRates value was created through NewTaxRates.
func (r TaxRates) Validate() error {
	if !r.isConstructed {
		return errs.NewValueIsRequiredError("TaxRates must be created via NewTaxRates")
	}
	return nil
}

// CGSTPct returns the central GST percentage.
func (r TaxRates) CGSTPct() decimal.Decimal {
	return r.cgstPct
}

// SGSTPct returns the state GST percentage.
func (r TaxRates) SGSTPct() decimal.Decimal {
	return r.sgstPct
}

// Totals is the derived monetary summary of an order. It is always
// recomputed from the items and tax rates, never hand-edited.
type Totals struct {
	Subtotal   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTAmount decimal.Decimal
	GSTAmount  decimal.Decimal
	Total      decimal.Decimal
}

// ZeroTotals returns an all-zero summary, the totals of an empty order.
func ZeroTotals() Totals {
	zero := decimal.Zero
	return Totals{Subtotal: zero, CGSTAmount: zero, SGSTAmount: zero, GSTAmount: zero, Total: zero}
}

// CalculateTotals computes the monetary summary for a list of line items
// under the given rates.
//
// Each derived field is rounded to 2 decimal places half-up independently:
// the subtotal, each tax component, their sum, and the grand total. The total
// is subtotal + gst of the already-rounded components, so
// Total == Subtotal + CGSTAmount + SGSTAmount holds exactly at 2dp.
//
// Negative prices or quantities are rejected, not clamped. The computation
// has no other failure modes and no side effects.
func CalculateTotals(items []Item, rates TaxRates) (Totals, error) {
	if err := rates.Validate(); err != nil {
		return Totals{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Price().IsNegative() {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(
				"price is invalid",
				fmt.Errorf("%s is negative", item.Price().String()),
			)
		}
		if item.Quantity() < 0 {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("%d is negative", item.Quantity()),
			)
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	hundred := decimal.NewFromInt(100)
	subtotal = subtotal.Round(2)
	cgst := subtotal.Mul(rates.CGSTPct()).Div(hundred).Round(2)
	sgst := subtotal.Mul(rates.SGSTPct()).Div(hundred).Round(2)
	gst := cgst.Add(sgst).Round(2)
	total := subtotal.Add(gst).Round(2)

	return Totals{
		Subtotal:   subtotal,
		CGSTAmount: cgst,
		SGSTAmount: sgst,
		GSTAmount:  gst,
		Total:      total,
	}, nil
}
