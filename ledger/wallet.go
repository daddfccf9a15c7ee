package ledger

import (
	"context"
	"sync"
	"time"

	"techshop/domain"
)

// DefaultStartBalance is the demo wallet's initial balance.
const DefaultStartBalance int64 = 50000

// Descriptions shown in the transaction history, matching the storefront UI
// language.
const (
	seedDescription    = "Начальный баланс"
	depositDescription = "Пополнение счёта"
)

// WalletLedger holds the balance and the transaction log. The two are only
// ever updated together inside one critical section, so the balance is
// always the signed sum of the log. Transaction ids come from a monotonic
// counter, not wall-clock time.
type WalletLedger struct {
	mu      sync.RWMutex
	balance int64
	log     []domain.Transaction // most recent first
	lastID  uint64
	now     func() time.Time
}

// NewWalletLedger constructs a wallet with the given start balance and one
// seed deposit transaction recording it. Negative start balances are treated
// as zero.
func NewWalletLedger(startBalance int64) *WalletLedger {
	w := &WalletLedger{now: time.Now}
	if startBalance < 0 {
		startBalance = 0
	}
	if startBalance > 0 {
		w.commit(domain.TransactionDeposit, startBalance, seedDescription)
	}
	return w
}

// compile-time assertion that WalletLedger implements domain.Wallet
var _ domain.Wallet = (*WalletLedger)(nil)

// commit applies the signed amount to the balance and prepends the matching
// transaction, as a single step. Must be called with the write lock held,
// or before the ledger is shared.
func (w *WalletLedger) commit(t domain.TransactionType, amount int64, description string) domain.Transaction {
	w.lastID++
	txn := domain.Transaction{
		ID:          w.lastID,
		Type:        t,
		Amount:      amount,
		Description: description,
		Date:        w.now(),
	}
	w.balance += amount
	w.log = append([]domain.Transaction{txn}, w.log...)
	return txn
}

func (w *WalletLedger) Deposit(ctx context.Context, amount int64) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, err
	}
	if amount <= 0 {
		return domain.Transaction{}, domain.NewInvalidAmountError(amount, "deposit must be positive")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.commit(domain.TransactionDeposit, amount, depositDescription), nil
}

func (w *WalletLedger) Debit(ctx context.Context, amount int64, description string) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, err
	}
	if amount <= 0 {
		return domain.Transaction{}, domain.NewInvalidAmountError(amount, "debit must be positive")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balance < amount {
		return domain.Transaction{}, domain.NewInsufficientFundsError(amount, w.balance)
	}
	return w.commit(domain.TransactionPurchase, -amount, description), nil
}

// Balance returns the current balance.
func (w *WalletLedger) Balance() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.balance
}

// Transactions returns a copy of the log, most recent first.
func (w *WalletLedger) Transactions() []domain.Transaction {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]domain.Transaction, len(w.log))
	copy(out, w.log)
	return out
}
