// Package domain defines core business types and interfaces.
package domain

// Product represents a catalog product. Prices are whole currency units
// stored as int64.
type Product struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Price       int64  `json:"price" yaml:"price"`
	Category    string `json:"category" yaml:"category"`
	Image       string `json:"image" yaml:"image"`
	// Discount is a percentage; 0 means no discount.
	Discount int `json:"discount,omitempty" yaml:"discount,omitempty"`
}

// ValidateProduct checks the product invariants: positive id and price,
// non-empty name, discount either absent or strictly between 0 and 100.
func ValidateProduct(p Product) error {
	if p.ID <= 0 {
		return NewInvalidProductError("id", "must be positive", p.ID)
	}
	if p.Name == "" {
		return NewInvalidProductError("name", "cannot be empty", p.Name)
	}
	if p.Price <= 0 {
		return NewInvalidProductError("price", "must be positive", p.Price)
	}
	if p.Discount < 0 || p.Discount >= 100 {
		return NewInvalidProductError("discount", "must be between 0 and 99", p.Discount)
	}
	return nil
}

// EffectiveUnitPrice returns the price after applying the discount, rounded
// to the nearest whole unit.
func (p Product) EffectiveUnitPrice() int64 {
	if p.Discount == 0 {
		return p.Price
	}
	return (p.Price*int64(100-p.Discount) + 50) / 100
}

// CartItem is a product selected for purchase. Quantity is always >= 1; a
// decrement that would reach 0 removes the item instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns the effective unit price times the quantity.
func (i CartItem) LineTotal() int64 {
	return i.Product.EffectiveUnitPrice() * int64(i.Quantity)
}
