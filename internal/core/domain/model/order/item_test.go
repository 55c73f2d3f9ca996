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

func newLine(t *testing.T, menuItemID kernel.UUID, portion, notes string, mods ...string) order.Item {
	t.Helper()

	item, err := order.NewItem(
		kernel.NewUUID(), menuItemID, "Paneer Tikka",
		decimal.NewFromInt(220), 1, mods, notes, portion, time.Now())
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("should create a valid item", func(t *testing.T) {
		id := kernel.NewUUID()
		menuItemID := kernel.NewUUID()
		addedAt := time.Now()

		item, err := order.NewItem(id, menuItemID, "Idli",
			decimal.NewFromInt(40), 2, []string{"extra chutney"}, "less salt", "full", addedAt)

		require.NoError(t, err)
		assert.True(t, item.ID().IsEqual(id))
		assert.True(t, item.MenuItemID().IsEqual(menuItemID))
		assert.Equal(t, "Idli", item.Name())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, []string{"extra chutney"}, item.Modifications())
		assert.Equal(t, "less salt", item.Notes())
		assert.Equal(t, "full", item.PortionSize())
		assert.Equal(t, addedAt, item.AddedAt())
		assert.Equal(t, "80", item.LineTotal().String())
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Idli",
			decimal.NewFromInt(-40), 1, nil, "", "", time.Now())
		require.Error(t, err)
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Idli",
			decimal.NewFromInt(40), 0, nil, "", "", time.Now())
		require.Error(t, err)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "",
			decimal.NewFromInt(40), 1, nil, "", "", time.Now())
		require.Error(t, err)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestItem_SameLine(t *testing.T) {
	menuItemID := kernel.NewUUID()

	t.Run("should match identical lines", func(t *testing.T) {
		a := newLine(t, menuItemID, "full", "no onion", "spicy")
		b := newLine(t, menuItemID, "full", "no onion", "spicy")

		assert.True(t, a.SameLine(b))
	})

	t.Run("modification order should not matter", func(t *testing.T) {
		a := newLine(t, menuItemID, "", "", "spicy", "no garlic")
		b := newLine(t, menuItemID, "", "", "no garlic", "spicy")

		assert.True(t, a.SameLine(b))
	})

	t.Run("should not match different menu items", func(t *testing.T) {
		a := newLine(t, menuItemID, "", "")
		b := newLine(t, kernel.NewUUID(), "", "")

		assert.False(t, a.SameLine(b))
	})

	t.Run("should not match different portion sizes", func(t *testing.T) {
		a := newLine(t, menuItemID, "half", "")
		b := newLine(t, menuItemID, "full", "")

		assert.False(t, a.SameLine(b))
	})

	t.Run("should not match different notes", func(t *testing.T) {
		a := newLine(t, menuItemID, "", "no onion")
		b := newLine(t, menuItemID, "", "")

		assert.False(t, a.SameLine(b))
	})

	t.Run("should not match different modification sets", func(t *testing.T) {
		a := newLine(t, menuItemID, "", "", "spicy")
		b := newLine(t, menuItemID, "", "", "mild")

		assert.False(t, a.SameLine(b))
	})
}

func TestItem_WithQuantity(t *testing.T) {
	t.Run("should return an updated copy", func(t *testing.T) {
		original := newLine(t, kernel.NewUUID(), "", "")

		updated, err := original.WithQuantity(5)

		require.NoError(t, err)
		assert.Equal(t, 5, updated.Quantity())
		assert.Equal(t, 1, original.Quantity())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		original := newLine(t, kernel.NewUUID(), "", "")

		_, err := original.WithQuantity(0)
		require.Error(t, err)
	})
}
