package customer

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/order"
)

// Sentinel errors for registry operations.
var (
	// ErrNotFound is returned when no customer has the requested phone number.
	ErrNotFound = errors.New("customer not found")
	// ErrAlreadyExists is returned when adding a customer whose phone number
	// is already registered.
	ErrAlreadyExists = errors.New("customer already exists")
)

// Customer represents a registered customer. Phone is the unique key within
// a Registry. Orders is the append-only purchase history.
type Customer struct {
	Name   string
	Phone  string
	orders []*order.Order
}

// New creates a customer with an empty order history.
func New(name, phone string) *Customer {
	return &Customer{Name: name, Phone: phone}
}

// AddOrder appends an order to the customer's history.
func (c *Customer) AddOrder(o *order.Order) {
	c.orders = append(c.orders, o)
}

// Orders returns the customer's order history in submission order.
func (c *Customer) Orders() []*order.Order {
	out := make([]*order.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// String renders the customer the way registry listings display it.
func (c *Customer) String() string {
	return fmt.Sprintf("%s - Phone: %s", c.Name, c.Phone)
}
