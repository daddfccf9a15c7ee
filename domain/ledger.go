package domain

import (
	"context"
	"time"
)

// Cart defines the shopping cart ledger: an ordered collection of cart
// items keyed by product id, with derived totals recomputed on every read.
type Cart interface {
	// Add inserts the product with quantity 1, or increments the quantity
	// of an existing item.
	Add(ctx context.Context, p Product) error
	// AddAfter performs Add once the delay elapses. Canceling the context
	// before the delay fires leaves the cart untouched.
	AddAfter(ctx context.Context, delay time.Duration, p Product) error
	// Remove deletes the item; absent ids are a no-op.
	Remove(ctx context.Context, productID int) error
	// SetQuantity sets the item's quantity. Quantities <= 0 remove the item;
	// the ledger never holds an item with quantity below 1.
	SetQuantity(ctx context.Context, productID, quantity int) error
	// Clear empties the cart unconditionally.
	Clear(ctx context.Context) error
	Items() []CartItem
	TotalItems() int
	TotalPrice() int64
}

// Wallet defines the balance-and-transaction-log ledger. Balance and log
// are always updated together; no operation exposes an intermediate state.
type Wallet interface {
	// Deposit adds funds. Non-positive amounts are rejected with
	// InvalidAmountError and no state change.
	Deposit(ctx context.Context, amount int64) (Transaction, error)
	// Debit withdraws funds. Fails with InsufficientFundsError and no state
	// change when the balance does not cover the amount.
	Debit(ctx context.Context, amount int64, description string) (Transaction, error)
	Balance() int64
	// Transactions returns the log, most recent first.
	Transactions() []Transaction
}

// Session defines the optional authenticated identity, persisted across
// process restarts through the durable client-side store.
type Session interface {
	Login(ctx context.Context, user User) error
	Logout(ctx context.Context) error
	Current() (User, bool)
	IsAuthenticated() bool
}
