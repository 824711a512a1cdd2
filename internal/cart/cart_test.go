package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesLinesAndEnforcesCap(t *testing.T) {
	c := &Cart{}

	require.NoError(t, c.Add("margherita"))
	require.NoError(t, c.Add("margherita"))
	assert.ErrorIs(t, c.Add("margherita"), ErrCartFull)
	assert.ErrorIs(t, c.Add("yoshi"), ErrCartFull)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestAddUnknownItem(t *testing.T) {
	c := &Cart{}
	assert.ErrorIs(t, c.Add("hawaiian"), ErrUnknownItem)
	assert.Empty(t, c.Items())
}

func TestUpdateQuantity(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add("margherita"))

	require.NoError(t, c.UpdateQuantity("margherita", 2))
	assert.Equal(t, 2, c.TotalQuantity())

	assert.ErrorIs(t, c.UpdateQuantity("margherita", 3), ErrCartFull)
	assert.Equal(t, 2, c.TotalQuantity())

	// Negative clamps to zero rather than erroring.
	require.NoError(t, c.UpdateQuantity("margherita", -1))
	assert.Equal(t, 0, c.TotalQuantity())
}

func TestUpdateQuantityAddsMissingLine(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.UpdateQuantity("yoshi", 1))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Yoshi's Weekly Special", items[0].Name)

	assert.ErrorIs(t, c.UpdateQuantity("hawaiian", 1), ErrUnknownItem)
}

func TestUpdateQuantityCapAcrossLines(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add("margherita"))
	require.NoError(t, c.Add("yoshi"))

	assert.ErrorIs(t, c.UpdateQuantity("yoshi", 2), ErrCartFull)
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestRemoveAndClear(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add("margherita"))
	require.NoError(t, c.Add("yoshi"))

	c.Remove("margherita")
	require.Len(t, c.Items(), 1)
	assert.Equal(t, "yoshi", c.Items()[0].ID)

	c.Clear()
	assert.Empty(t, c.Items())
	assert.Zero(t, c.Total())
}

func TestTotal(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add("margherita"))
	require.NoError(t, c.Add("yoshi"))

	assert.InDelta(t, 45.0, c.Total(), 0.001)
}

func TestLineItemsSkipZeroQuantity(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add("margherita"))
	require.NoError(t, c.Add("yoshi"))
	require.NoError(t, c.UpdateQuantity("margherita", 0))

	lines := c.LineItems()
	require.Len(t, lines, 1)
	assert.Equal(t, "Yoshi's Weekly Special", lines[0].Name)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestMenuItemLookup(t *testing.T) {
	item, ok := MenuItem("margherita")
	require.True(t, ok)
	assert.Equal(t, "Classic Margherita", item.Name)
	assert.Equal(t, 20.0, item.Price)

	_, ok = MenuItem("nope")
	assert.False(t, ok)
}
