package order_test

import (
	"testing"
	"time"

	"dinein/internal/core/domain/model/kernel"
	"dinein/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRates(t *testing.T, cgst, sgst float64) order.TaxRates {
	t.Helper()

	rates, err := order.NewTaxRates(decimal.NewFromFloat(cgst), decimal.NewFromFloat(sgst))
	require.NoError(t, err)
	return rates
}

func mustItem(t *testing.T, price float64, quantity int) order.Item {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Masala Dosa",
		decimal.NewFromFloat(price), quantity, nil, "", "", time.Now())
	require.NoError(t, err)
	return item
}

func TestNewTaxRates(t *testing.T) {
	t.Run("should accept percentages within bounds", func(t *testing.T) {
		rates := mustRates(t, 2.5, 2.5)
		assert.True(t, rates.CGSTPct().Equal(decimal.NewFromFloat(2.5)))
		assert.True(t, rates.SGSTPct().Equal(decimal.NewFromFloat(2.5)))
	})

	t.Run("should reject negative percentages", func(t *testing.T) {
		_, err := order.NewTaxRates(decimal.NewFromFloat(-1), decimal.NewFromFloat(2.5))
		require.Error(t, err)
	})

	t.Run("should reject percentages above 100", func(t *testing.T) {
		_, err := order.NewTaxRates(decimal.NewFromFloat(2.5), decimal.NewFromFloat(101))
		require.Error(t, err)
	})

	t.Run("default should be 2.5/2.5", func(t *testing.T) {
		rates := order.DefaultTaxRates()
		assert.True(t, rates.CGSTPct().Equal(decimal.NewFromFloat(2.5)))
		assert.True(t, rates.SGSTPct().Equal(decimal.NewFromFloat(2.5)))
	})
}

func TestCalculateTotals(t *testing.T) {
	t.Run("should compute the documented fixture", func(t *testing.T) {
		// items [{price:100, qty:2}], rates {2.5, 2.5}
		totals, err := order.CalculateTotals([]order.Item{mustItem(t, 100, 2)}, mustRates(t, 2.5, 2.5))

		require.NoError(t, err)
		assert.Equal(t, "200", totals.Subtotal.String())
		assert.Equal(t, "5", totals.CGSTAmount.String())
		assert.Equal(t, "5", totals.SGSTAmount.String())
		assert.Equal(t, "10", totals.GSTAmount.String())
		assert.Equal(t, "210", totals.Total.String())
	})

	t.Run("should compute the idli fixture", func(t *testing.T) {
		// 2 x 40 at 2.5/2.5 -> 80 + 2 + 2 = 84
		totals, err := order.CalculateTotals([]order.Item{mustItem(t, 40, 2)}, mustRates(t, 2.5, 2.5))

		require.NoError(t, err)
		assert.Equal(t, "80", totals.Subtotal.String())
		assert.Equal(t, "84", totals.Total.String())
	})

	t.Run("should round every derived field independently", func(t *testing.T) {
		// 3 x 33.33 = 99.99; 2.5% of 99.99 = 2.49975 -> 2.50 half-up
		totals, err := order.CalculateTotals([]order.Item{mustItem(t, 33.33, 3)}, mustRates(t, 2.5, 2.5))

		require.NoError(t, err)
		assert.Equal(t, "99.99", totals.Subtotal.String())
		assert.Equal(t, "2.5", totals.CGSTAmount.String())
		assert.Equal(t, "2.5", totals.SGSTAmount.String())
		assert.Equal(t, "5", totals.GSTAmount.String())
		assert.Equal(t, "104.99", totals.Total.String())
	})

	t.Run("total equals subtotal plus tax components", func(t *testing.T) {
		fixtures := []struct {
			price float64
			qty   int
			cgst  float64
			sgst  float64
		}{
			{100, 2, 2.5, 2.5},
			{33.33, 3, 2.5, 2.5},
			{49.99, 7, 9, 9},
			{1.01, 1, 0, 0},
			{250, 4, 6, 6},
		}

		for _, f := range fixtures {
			totals, err := order.CalculateTotals([]order.Item{mustItem(t, f.price, f.qty)}, mustRates(t, f.cgst, f.sgst))
			require.NoError(t, err)

			sum := totals.Subtotal.Add(totals.CGSTAmount).Add(totals.SGSTAmount)
			assert.True(t, totals.Total.Equal(sum),
				"total %s != subtotal+cgst+sgst %s", totals.Total, sum)
			assert.True(t, totals.GSTAmount.Equal(totals.CGSTAmount.Add(totals.SGSTAmount)))
		}
	})

	t.Run("should return zero totals for no items", func(t *testing.T) {
		totals, err := order.CalculateTotals(nil, order.DefaultTaxRates())

		require.NoError(t, err)
		assert.True(t, totals.Total.IsZero())
		assert.True(t, totals.Subtotal.IsZero())
	})

	t.Run("should reject unconstructed rates", func(t *testing.T) {
		_, err := order.CalculateTotals(nil, order.TaxRates{})
		require.Error(t, err)
	})
}
