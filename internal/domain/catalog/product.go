package catalog

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrAlreadyExists is returned when adding a product whose name is
	// already taken.
	ErrAlreadyExists = errors.New("product already exists")
)

// Product represents a catalog item available for sale. Name is the unique
// key within a Catalog.
type Product struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// InvalidProductError indicates a product failed field validation.
type InvalidProductError struct {
	Name   string
	Reason string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product %q: %s", e.Name, e.Reason)
}

// Validate checks the product's fields before catalog admission.
func (p *Product) Validate() error {
	if p.Name == "" {
		return &InvalidProductError{Name: p.Name, Reason: "name must not be empty"}
	}
	if p.Price.IsNegative() {
		return &InvalidProductError{Name: p.Name, Reason: "price must not be negative"}
	}
	if p.Stock < 0 {
		return &InvalidProductError{Name: p.Name, Reason: "stock must not be negative"}
	}
	return nil
}

// String renders the product the way catalog listings display it.
func (p *Product) String() string {
	return fmt.Sprintf("%s - Price: %s - Stock: %d", p.Name, p.Price.String(), p.Stock)
}
