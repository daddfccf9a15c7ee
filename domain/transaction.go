package domain

import "time"

// TransactionType classifies a wallet transaction.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionPurchase TransactionType = "purchase"
	TransactionRefund   TransactionType = "refund"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionPurchase, TransactionRefund:
		return true
	}
	return false
}

// Transaction is an immutable wallet log entry. Amount is signed: positive
// for deposits and refunds, negative for purchases. IDs are monotonic per
// wallet.
type Transaction struct {
	ID          uint64          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}
