package order

// Ledger is the append-only collection of recorded orders. Iteration order
// is submission order. Recording an order finalizes it, so ledger entries
// can no longer be mutated through the Order API.
type Ledger struct {
	orders []*Order
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add finalizes the order and appends it to the ledger.
func (l *Ledger) Add(o *Order) {
	o.Finalize()
	l.orders = append(l.orders, o)
}

// List returns the recorded orders in chronological submission order.
func (l *Ledger) List() []*Order {
	out := make([]*Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Len reports the number of recorded orders.
func (l *Ledger) Len() int {
	return len(l.orders)
}
