package memory_repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/RoyceAzure/lab/shoeverse/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	repo := NewSessionStateRepo[cart.Cart]()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Update(ctx, "sid-1", func(c *cart.Cart) error {
				return c.Add("men", 1, "9", 1)
			}))
		}()
	}
	wg.Wait()

	c, err := repo.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Equal(t, 50, c.Lines[0].Quantity)
}

func TestLoadReturnsCopy(t *testing.T) {
	repo := NewSessionStateRepo[cart.Cart]()
	ctx := context.Background()
	require.NoError(t, repo.Update(ctx, "sid-1", func(c *cart.Cart) error {
		return c.Add("men", 1, "9", 1)
	}))

	c, err := repo.Load(ctx, "sid-1")
	require.NoError(t, err)
	c.Lines[0].Quantity = 99

	again, err := repo.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, 1, again.Lines[0].Quantity)
}

func TestUpdateErrorAndDelete(t *testing.T) {
	repo := NewSessionStateRepo[cart.Wishlist]()
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Update(ctx, "sid-1", func(w *cart.Wishlist) error {
		w.Add("men", 1)
		return boom
	})
	require.ErrorIs(t, err, boom)

	w, err := repo.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Empty(t, w.Entries)

	require.NoError(t, repo.Update(ctx, "sid-1", func(w *cart.Wishlist) error {
		w.Add("men", 1)
		return nil
	}))
	require.NoError(t, repo.Delete(ctx, "sid-1"))

	w, err = repo.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Empty(t, w.Entries)
}

func TestSessionLocksAreReleased(t *testing.T) {
	repo := NewSessionStateRepo[cart.Cart]()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := "sid-even"
			if i%2 == 1 {
				sid = "sid-odd"
			}
			assert.NoError(t, repo.Update(ctx, sid, func(c *cart.Cart) error {
				return c.Add("men", 1, "9", 1)
			}))
		}(i)
	}
	wg.Wait()
	require.Empty(t, repo.locks)

	require.NoError(t, repo.Delete(ctx, "sid-even"))
	require.NoError(t, repo.Delete(ctx, "never-used"))
	require.Empty(t, repo.locks)

	c, err := repo.Load(ctx, "sid-odd")
	require.NoError(t, err)
	require.Equal(t, 10, c.Lines[0].Quantity)
}
