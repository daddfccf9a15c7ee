package ledger

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techshop/domain"
)

var (
	headphones = domain.Product{ID: 1, Name: "Наушники", Price: 1000, Category: "Аудио", Discount: 20}
	watch      = domain.Product{ID: 2, Name: "Часы", Price: 8990, Category: "Гаджеты"}
)

func TestCartAdd(t *testing.T) {
	ctx := context.Background()
	c := NewCartLedger()

	t.Run("repeated adds accumulate quantity on one item", func(t *testing.T) {
		require.NoError(t, c.Add(ctx, headphones))
		require.NoError(t, c.Add(ctx, headphones))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, 2, c.TotalItems())
		// round(1000 * 0.8) * 2
		assert.Equal(t, int64(1600), c.TotalPrice())
	})

	t.Run("distinct products keep insertion order", func(t *testing.T) {
		require.NoError(t, c.Add(ctx, watch))
		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].Product.ID)
		assert.Equal(t, 2, items[1].Product.ID)
		assert.Equal(t, 3, c.TotalItems())
		assert.Equal(t, int64(1600+8990), c.TotalPrice())
	})

	t.Run("invalid product rejected", func(t *testing.T) {
		err := c.Add(ctx, domain.Product{ID: 3, Name: "", Price: 10})
		assert.True(t, domain.IsInvalidProductError(err))
	})

	t.Run("canceled context leaves cart untouched", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		before := c.TotalItems()
		err := c.Add(canceled, headphones)
		require.Error(t, err)
		assert.Equal(t, before, c.TotalItems())
	})
}

func TestCartSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets quantity", func(t *testing.T) {
		c := NewCartLedger()
		require.NoError(t, c.Add(ctx, headphones))
		require.NoError(t, c.SetQuantity(ctx, headphones.ID, 5))
		assert.Equal(t, 5, c.TotalItems())
	})

	t.Run("zero removes the item", func(t *testing.T) {
		c := NewCartLedger()
		require.NoError(t, c.Add(ctx, headphones))
		require.NoError(t, c.SetQuantity(ctx, headphones.ID, 0))
		assert.Empty(t, c.Items())
	})

	t.Run("negative removes the item", func(t *testing.T) {
		c := NewCartLedger()
		require.NoError(t, c.Add(ctx, headphones))
		require.NoError(t, c.SetQuantity(ctx, headphones.ID, -1))
		assert.Empty(t, c.Items())
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		c := NewCartLedger()
		require.NoError(t, c.SetQuantity(ctx, 42, 3))
		assert.Empty(t, c.Items())
	})

	t.Run("ledger never holds quantity below one", func(t *testing.T) {
		c := NewCartLedger()
		require.NoError(t, c.Add(ctx, headphones))
		require.NoError(t, c.Add(ctx, watch))
		// simulate the UI decrement loop down past zero
		for q := 1; q >= -2; q-- {
			require.NoError(t, c.SetQuantity(ctx, headphones.ID, q))
		}
		for _, item := range c.Items() {
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewCartLedger()
	require.NoError(t, c.Add(ctx, headphones))
	require.NoError(t, c.Add(ctx, watch))

	t.Run("remove deletes by id", func(t *testing.T) {
		require.NoError(t, c.Remove(ctx, headphones.ID))
		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, watch.ID, items[0].Product.ID)
	})

	t.Run("remove of absent id is a no-op", func(t *testing.T) {
		require.NoError(t, c.Remove(ctx, 42))
		assert.Len(t, c.Items(), 1)
	})

	t.Run("clear empties unconditionally", func(t *testing.T) {
		require.NoError(t, c.Clear(ctx))
		assert.Empty(t, c.Items())
		assert.Equal(t, 0, c.TotalItems())
		assert.Equal(t, int64(0), c.TotalPrice())
	})
}

func TestCartAddAfter(t *testing.T) {
	t.Run("fires after the delay", func(t *testing.T) {
		c := NewCartLedger()
		err := c.AddAfter(context.Background(), time.Millisecond, headphones)
		require.NoError(t, err)
		assert.Equal(t, 1, c.TotalItems())
	})

	t.Run("zero delay adds immediately", func(t *testing.T) {
		c := NewCartLedger()
		require.NoError(t, c.AddAfter(context.Background(), 0, headphones))
		assert.Equal(t, 1, c.TotalItems())
	})

	t.Run("cancellation before the delay leaves the cart untouched", func(t *testing.T) {
		c := NewCartLedger()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := c.AddAfter(ctx, time.Hour, headphones)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, c.Items())
	})
}

func TestCartItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewCartLedger()
	require.NoError(t, c.Add(ctx, headphones))

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.TotalItems())
}

func BenchmarkCartLedger_Add(b *testing.B) {
	ctx := context.Background()
	c := NewCartLedger()
	for i := 0; i < b.N; i++ {
		p := domain.Product{ID: i%100 + 1, Name: "P" + strconv.Itoa(i%100), Price: 100}
		_ = c.Add(ctx, p)
	}
}

func BenchmarkCartLedger_TotalPrice(b *testing.B) {
	ctx := context.Background()
	c := NewCartLedger()
	for i := 1; i <= 100; i++ {
		_ = c.Add(ctx, domain.Product{ID: i, Name: "P" + strconv.Itoa(i), Price: int64(i * 10), Discount: i % 30})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.TotalPrice()
	}
}
