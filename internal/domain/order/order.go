package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/catalog"
)

// Sentinel errors for order mutation.
var (
	// ErrFinalized is returned when mutating an order that has already been
	// recorded in the ledger.
	ErrFinalized = errors.New("order is finalized")
	// ErrInvalidDiscount is returned when a discount percent is outside [0, 100].
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
)

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductName string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductName)
}

// InsufficientStockError indicates a product does not have enough stock to
// cover a requested quantity.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}

// LineItem is one (product, quantity) pair within an order. Name and unit
// price are snapshotted at add time, so later catalog price changes do not
// move an order's total.
type LineItem struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subtotal returns unit price times quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

var hundred = decimal.NewFromInt(100)

// Order accumulates line items and an optional discount. It starts in the
// building state; once recorded in a Ledger it is finalized and all mutation
// fails with ErrFinalized.
type Order struct {
	ID              string
	CreatedAt       time.Time
	items           []LineItem
	discountPercent decimal.Decimal
	finalized       bool
}

// New creates an empty order in the building state.
func New() *Order {
	return &Order{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
}

// AddItem appends a line for the given product and decrements the product's
// stock immediately. The decrement is not staged until checkout: it hits the
// shared catalog entry the moment the line is accepted. On any error the
// order and the product are left unchanged.
func (o *Order) AddItem(p *catalog.Product, quantity int) error {
	if o.finalized {
		return ErrFinalized
	}
	if quantity <= 0 {
		return &InvalidQuantityError{ProductName: p.Name}
	}
	if p.Stock < quantity {
		return &InsufficientStockError{
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   quantity,
		}
	}

	p.Stock -= quantity
	o.items = append(o.items, LineItem{
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    quantity,
	})
	return nil
}

// ApplyDiscount sets the order-level discount percent. A second call
// overwrites the first; discounts do not accumulate. Percent must be within
// [0, 100].
func (o *Order) ApplyDiscount(percent decimal.Decimal) error {
	if o.finalized {
		return ErrFinalized
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return ErrInvalidDiscount
	}
	o.discountPercent = percent
	return nil
}

// Total computes the order total: the sum of line subtotals, reduced by the
// discount percent when one is set, rounded to 2 decimal places.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range o.items {
		total = total.Add(li.Subtotal())
	}
	if !o.discountPercent.IsZero() {
		total = total.Mul(hundred.Sub(o.discountPercent)).Div(hundred)
	}
	return total.Round(2)
}

// DiscountPercent returns the currently applied discount percent.
func (o *Order) DiscountPercent() decimal.Decimal {
	return o.discountPercent
}

// Items returns the order's line items in insertion order.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Finalize moves the order out of the building state. It is idempotent.
func (o *Order) Finalize() {
	o.finalized = true
}

// Finalized reports whether the order has been finalized.
func (o *Order) Finalized() bool {
	return o.finalized
}

// String renders the order as one "- name: quantity" line per item, in
// insertion order.
func (o *Order) String() string {
	var b strings.Builder
	for i, li := range o.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %d", li.ProductName, li.Quantity)
	}
	return b.String()
}
