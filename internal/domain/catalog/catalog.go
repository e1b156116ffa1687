package catalog

import (
	"github.com/shopspring/decimal"
)

// Catalog is the owning collection of products, keyed by name. It preserves
// insertion order for listings and snapshots, and enforces name uniqueness:
// a duplicate Add is rejected and Remove deletes exactly one entry.
//
// Catalog is not safe for concurrent use; the application drives it from a
// single session.
type Catalog struct {
	products []*Product
	byName   map[string]*Product
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		byName: make(map[string]*Product),
	}
}

// Add admits a product into the catalog. It returns ErrAlreadyExists when the
// name is taken and a validation error when the fields are out of range.
func (c *Catalog) Add(p *Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := c.byName[p.Name]; ok {
		return ErrAlreadyExists
	}
	c.products = append(c.products, p)
	c.byName[p.Name] = p
	return nil
}

// Remove deletes the product with the given name, or returns ErrNotFound.
func (c *Catalog) Remove(name string) error {
	if _, ok := c.byName[name]; !ok {
		return ErrNotFound
	}
	delete(c.byName, name)
	for i, p := range c.products {
		if p.Name == name {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the live catalog entry for the given name. The pointer is
// borrowed: the catalog owns the product and must outlive any order
// referencing it.
func (c *Catalog) Find(name string) (*Product, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Update overwrites the price and/or stock of an existing product. A nil
// field means "no change". Provided values are validated before any field is
// written, so a failed update leaves the product untouched.
func (c *Catalog) Update(name string, price *decimal.Decimal, stock *int) error {
	p, ok := c.byName[name]
	if !ok {
		return ErrNotFound
	}
	if price != nil && price.IsNegative() {
		return &InvalidProductError{Name: name, Reason: "price must not be negative"}
	}
	if stock != nil && *stock < 0 {
		return &InvalidProductError{Name: name, Reason: "stock must not be negative"}
	}
	if price != nil {
		p.Price = *price
	}
	if stock != nil {
		p.Stock = *stock
	}
	return nil
}

// List returns the catalog entries in insertion order. The slice is a copy;
// the pointed-to products are live.
func (c *Catalog) List() []*Product {
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns value copies of all entries in insertion order, suitable
// for persistence.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = *p
	}
	return out
}
