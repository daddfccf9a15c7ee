package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techshop/catalog"
	"techshop/domain"
	"techshop/storage"
)

func newTestShop(t *testing.T) *Shop {
	t.Helper()
	cat, err := catalog.New([]domain.Product{
		{ID: 1, Name: "Наушники", Price: 1000, Category: "Аудио", Discount: 20},
		{ID: 2, Name: "Часы", Price: 8990, Category: "Гаджеты"},
	})
	require.NoError(t, err)
	return New(Config{Catalog: cat, Store: storage.NewMemoryKV(), StartBalance: 50000})
}

func TestNewDefaults(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, 6, s.Catalog.Len())
	assert.Equal(t, int64(50000), s.Wallet.Balance())
	assert.False(t, s.Session.IsAuthenticated())
	assert.Equal(t, 0, s.Cart.TotalItems())
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)

	p, err := s.AddToCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Наушники", p.Name)
	assert.Equal(t, 1, s.Cart.TotalItems())

	_, err = s.AddToCart(ctx, 99)
	assert.True(t, domain.IsProductNotFoundError(err))
	assert.Equal(t, 1, s.Cart.TotalItems())
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("debits the total and clears the cart", func(t *testing.T) {
		s := newTestShop(t)
		_, err := s.AddToCart(ctx, 1)
		require.NoError(t, err)
		_, err = s.AddToCart(ctx, 1)
		require.NoError(t, err)

		receipt, err := s.Checkout(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(1600), receipt.Total)
		assert.NotEmpty(t, receipt.OrderID)
		require.Len(t, receipt.Items, 1)
		assert.Equal(t, 2, receipt.Items[0].Quantity)
		assert.Equal(t, domain.TransactionPurchase, receipt.Transaction.Type)
		assert.Equal(t, int64(-1600), receipt.Transaction.Amount)

		assert.Equal(t, int64(48400), s.Wallet.Balance())
		assert.Empty(t, s.Cart.Items())

		newest := s.Wallet.Transactions()[0]
		assert.Equal(t, receipt.Transaction.ID, newest.ID)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		s := newTestShop(t)
		_, err := s.Checkout(ctx)
		assert.True(t, domain.IsEmptyCartError(err))
	})

	t.Run("insufficient funds leaves cart and wallet unchanged", func(t *testing.T) {
		cat, err := catalog.New([]domain.Product{
			{ID: 1, Name: "Дорогой товар", Price: 99000},
		})
		require.NoError(t, err)
		s := New(Config{Catalog: cat, Store: storage.NewMemoryKV(), StartBalance: 1000})

		_, err = s.AddToCart(ctx, 1)
		require.NoError(t, err)

		_, err = s.Checkout(ctx)
		assert.True(t, domain.IsInsufficientFundsError(err))
		assert.Equal(t, int64(1000), s.Wallet.Balance())
		assert.Equal(t, 1, s.Cart.TotalItems())
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the name from the email local part", func(t *testing.T) {
		s := newTestShop(t)
		u, err := s.Login(ctx, "ivan@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, domain.User{Name: "ivan", Email: "ivan@example.com"}, u)
		assert.True(t, s.Session.IsAuthenticated())
	})

	t.Run("missing fields rejected without a session", func(t *testing.T) {
		s := newTestShop(t)
		_, err := s.Login(ctx, "", "secret")
		assert.True(t, domain.IsInvalidCredentialsError(err))
		_, err = s.Login(ctx, "ivan@example.com", "")
		assert.True(t, domain.IsInvalidCredentialsError(err))
		assert.False(t, s.Session.IsAuthenticated())
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration opens a session", func(t *testing.T) {
		s := newTestShop(t)
		u, err := s.Register(ctx, "Анна", "anna@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Анна", u.Name)
		assert.True(t, s.Session.IsAuthenticated())
	})

	t.Run("short password rejected without a session", func(t *testing.T) {
		s := newTestShop(t)
		_, err := s.Register(ctx, "Анна", "anna@example.com", "12345")
		assert.True(t, domain.IsInvalidCredentialsError(err))
		assert.False(t, s.Session.IsAuthenticated())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s := newTestShop(t)

	_, err := s.Login(ctx, "ivan@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.Session.IsAuthenticated())
}
