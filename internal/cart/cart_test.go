package cart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/inventory"
	"github.com/noah-isme/toko-checkout/internal/money"
)

func newCart(t *testing.T) (*Cart, *catalog.Catalog, *inventory.Stock) {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	s, err := inventory.NewWithLevels(catalog.DemoStockLevels())
	require.NoError(t, err)
	return New("c1", c, s), c, s
}

func TestAddItemFreezesPriceAndMerges(t *testing.T) {
	cart, c, _ := newCart(t)
	require.NoError(t, cart.AddItem("CAMISETA", 2))
	require.NoError(t, c.UpdatePrice("CAMISETA", money.New("99.00")))
	require.NoError(t, cart.AddItem("CAMISETA", 1))
	require.NoError(t, cart.AddItem("MEIA", 1))

	items := cart.Items()
	require.Len(t, items, 2)
	require.Equal(t, "CAMISETA", items[0].SKU)
	require.Equal(t, 3, items[0].Quantity)
	require.Equal(t, "30.00", items[0].UnitPrice.StringFixed(2))
	require.Equal(t, "100.00", cart.Subtotal().StringFixed(2))
}

func TestAddItemChecksMergedQuantityAgainstStock(t *testing.T) {
	cart, _, _ := newCart(t)
	require.NoError(t, cart.AddItem("MICRO", 3))
	err := cart.AddItem("MICRO", 3)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	require.Equal(t, 3, cart.Items()[0].Quantity)

	require.ErrorIs(t, cart.AddItem("MICRO", 999), inventory.ErrInsufficientStock)
	require.ErrorIs(t, cart.AddItem("NOPE", 1), catalog.ErrUnknownSKU)
	require.ErrorIs(t, cart.AddItem("ARROZ", 0), ErrInvalidQuantity)
}

func TestUpdateAndRemove(t *testing.T) {
	cart, _, _ := newCart(t)
	require.NoError(t, cart.AddItem("ARROZ", 1))
	require.NoError(t, cart.AddItem("FEIJAO", 1))

	require.NoError(t, cart.UpdateQuantity("ARROZ", 4))
	require.ErrorIs(t, cart.UpdateQuantity("ARROZ", 0), ErrInvalidQuantity)
	require.ErrorIs(t, cart.UpdateQuantity("ARROZ", 51), inventory.ErrInsufficientStock)
	require.ErrorIs(t, cart.UpdateQuantity("OLEO", 1), ErrItemNotFound)

	require.NoError(t, cart.RemoveItem("ARROZ"))
	require.ErrorIs(t, cart.RemoveItem("ARROZ"), ErrItemNotFound)
	items := cart.LineItems()
	require.Len(t, items, 1)
	require.Equal(t, "FEIJAO", items[0].SKU)
	require.Equal(t, "7.50", items[0].UnitPrice.StringFixed(2))
}

func TestStoreLifecycle(t *testing.T) {
	_, c, s := newCart(t)
	store := NewStore(c, s)
	created := store.Create()
	require.True(t, created.IsEmpty())

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	require.Same(t, created, got)

	store.Delete(created.ID)
	_, err = store.Get(created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
