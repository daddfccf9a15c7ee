// Package shop wires the catalog and the three ledgers into the storefront
// flows the CLI drives.
package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"techshop/catalog"
	"techshop/domain"
	"techshop/ledger"
	"techshop/storage"
)

// Shop is the storefront service: one catalog, one cart, one wallet, one
// session, constructed once at process start.
type Shop struct {
	Catalog *catalog.Catalog
	Cart    domain.Cart
	Wallet  domain.Wallet
	Session domain.Session
}

// Config controls construction. Zero values get the demo defaults.
type Config struct {
	Catalog      *catalog.Catalog
	Store        storage.KV
	StartBalance int64
}

// New constructs a Shop. A nil catalog uses the built-in one, a nil store
// uses an in-memory store, a zero start balance uses the demo default.
func New(cfg Config) *Shop {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Store == nil {
		cfg.Store = storage.NewMemoryKV()
	}
	if cfg.StartBalance == 0 {
		cfg.StartBalance = ledger.DefaultStartBalance
	}
	return &Shop{
		Catalog: cfg.Catalog,
		Cart:    ledger.NewCartLedger(),
		Wallet:  ledger.NewWalletLedger(cfg.StartBalance),
		Session: ledger.NewSessionLedger(cfg.Store),
	}
}

// AddToCart looks the product up in the catalog and adds it to the cart.
func (s *Shop) AddToCart(ctx context.Context, productID int) (domain.Product, error) {
	p, err := s.Catalog.Get(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Cart.Add(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Receipt records a successful checkout.
type Receipt struct {
	OrderID     string             `json:"order_id"`
	Items       []domain.CartItem  `json:"items"`
	Total       int64              `json:"total"`
	Transaction domain.Transaction `json:"transaction"`
	Date        time.Time          `json:"date"`
}

// Checkout debits the cart total from the wallet and clears the cart. An
// empty cart is rejected; a rejected debit leaves both cart and wallet
// unchanged.
func (s *Shop) Checkout(ctx context.Context) (Receipt, error) {
	items := s.Cart.Items()
	if len(items) == 0 {
		return Receipt{}, domain.NewEmptyCartError()
	}
	total := s.Cart.TotalPrice()
	orderID := uuid.NewString()

	txn, err := s.Wallet.Debit(ctx, total, fmt.Sprintf("Оплата заказа %s", orderID))
	if err != nil {
		return Receipt{}, err
	}
	if err := s.Cart.Clear(ctx); err != nil {
		return Receipt{}, err
	}
	return Receipt{
		OrderID:     orderID,
		Items:       items,
		Total:       total,
		Transaction: txn,
		Date:        txn.Date,
	}, nil
}

// Login validates the form input and opens a session. Any non-empty
// email/password pair is accepted; the display name is the email local part.
func (s *Shop) Login(ctx context.Context, email, password string) (domain.User, error) {
	if err := domain.ValidateLogin(email, password); err != nil {
		return domain.User{}, err
	}
	u := domain.User{Name: domain.NameFromEmail(email), Email: email}
	if err := s.Session.Login(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Register validates the registration form and opens a session. The
// password is checked for presence and length only, then discarded.
func (s *Shop) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	if err := domain.ValidateRegistration(name, email, password); err != nil {
		return domain.User{}, err
	}
	u := domain.User{Name: name, Email: email}
	if err := s.Session.Login(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Logout closes the session and erases the persisted identity.
func (s *Shop) Logout(ctx context.Context) error {
	return s.Session.Logout(ctx)
}
