// Package catalog holds the immutable product list and its search.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"

	"techshop/domain"
)

//go:embed products.json
var defaultProducts []byte

// Catalog is an immutable, ordered product list. Search results and listings
// preserve insertion order; there is no ranking.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
}

// New builds a catalog from the given products, validating each one and
// rejecting duplicate ids.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if err := domain.ValidateProduct(p); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, domain.NewInvalidProductError("id", "duplicate product id", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default returns the built-in TechShop catalog.
func Default() *Catalog {
	var products []domain.Product
	if err := json.Unmarshal(defaultProducts, &products); err != nil {
		// the embedded catalog is validated by tests; a parse failure here
		// is a build defect
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	c, err := New(products)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog file. The format follows the extension: .yaml/.yml
// for YAML, anything else is parsed as JSON.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &products); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &products); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	}
	return New(products)
}

// Products returns the full list in catalog order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, domain.NewProductNotFoundError(id)
	}
	return c.products[i], nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Search returns the products whose name, description or category contains
// the query as a case-insensitive substring, in catalog order. An empty
// query matches everything.
func (c *Catalog) Search(query string) []domain.Product {
	q := strings.ToLower(query)
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
