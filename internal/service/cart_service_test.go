package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/RoyceAzure/lab/shoeverse/internal/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCartAddSameKeyMerges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.cartService.AddItem(ctx, "sid", "men", 1, "9", 1))
	require.NoError(t, env.cartService.AddItem(ctx, "sid", "men", 1, "9", 1))

	lines, err := env.cartService.Snapshot(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
}

func TestCartAddValidationOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	testCases := []struct {
		name      string
		category  string
		productID int
		size      string
		qty       int
		code      errs.ErrCode
	}{
		{name: "missing size before unknown product", category: "men", productID: 99, size: "", qty: 1, code: errs.ValidationCode},
		{name: "zero quantity", category: "men", productID: 1, size: "9", qty: 0, code: errs.ValidationCode},
		{name: "unknown product", category: "men", productID: 99, size: "9", qty: 1, code: errs.NotFoundCode},
		{name: "unknown category", category: "pets", productID: 1, size: "9", qty: 1, code: errs.NotFoundCode},
		{name: "size longer than column", category: "men", productID: 1, size: "EU 42 / US 9.5 wide", qty: 1, code: errs.ValidationCode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := env.cartService.AddItem(ctx, "sid", tc.category, tc.productID, tc.size, tc.qty)
			require.Equal(t, tc.code, errs.CodeOf(err))
		})
	}

	lines, err := env.cartService.Snapshot(ctx, "sid")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCartUpdateQuantityAndRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.cartService.AddItem(ctx, "sid", "men", 1, "9", 1))

	require.NoError(t, env.cartService.UpdateQuantity(ctx, "sid", "men", 1, "9", "decrease"))
	lines, err := env.cartService.Snapshot(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, 1, lines[0].Quantity)

	require.NoError(t, env.cartService.UpdateQuantity(ctx, "sid", "men", 1, "9", "increase"))
	lines, err = env.cartService.Snapshot(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, 2, lines[0].Quantity)

	err = env.cartService.UpdateQuantity(ctx, "sid", "men", 1, "9", "triple")
	require.Equal(t, errs.ValidationCode, errs.CodeOf(err))

	require.NoError(t, env.cartService.RemoveItem(ctx, "sid", "men", 1, "10"))
	require.NoError(t, env.cartService.RemoveItem(ctx, "sid", "men", 1, "9"))
	lines, err = env.cartService.Snapshot(ctx, "sid")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCartViewSkipsUnresolvedProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.cartService.AddItem(ctx, "sid", "men", 1, "9", 2))
	require.NoError(t, env.cartService.AddItem(ctx, "sid", "kids", 1, "3", 1))
	require.NoError(t, env.cartStore.Update(ctx, "sid", func(c *cart.Cart) error {
		return c.Add("women", 42, "7", 1)
	}))

	view, err := env.cartService.View(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	require.Equal(t, "Runner", view.Lines[0].Name)
	require.True(t, decimal.NewFromInt(100).Equal(view.Lines[0].LineTotal))
	require.True(t, decimal.NewFromInt(120).Equal(view.Subtotal))

	require.NoError(t, env.cartService.Clear(ctx, "sid"))
	view, err = env.cartService.View(ctx, "sid")
	require.NoError(t, err)
	require.Empty(t, view.Lines)
	require.True(t, view.Subtotal.IsZero())
}

func TestCartMissingSession(t *testing.T) {
	env := newTestEnv(t)
	err := env.cartService.AddItem(context.Background(), "", "men", 1, "9", 1)
	require.Equal(t, errs.ValidationCode, errs.CodeOf(err))
}
