package session

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/catalog"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/customer"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/order"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/storage/snapshot"
)

// harness wires a session to scripted input and captures its output.
type harness struct {
	catalog   *catalog.Catalog
	customers *customer.Registry
	ledger    *order.Ledger
	store     *snapshot.Store
	out       bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		catalog:   catalog.New(),
		customers: customer.NewRegistry(),
		ledger:    order.NewLedger(),
		store:     snapshot.New(filepath.Join(t.TempDir(), "products.json")),
	}
}

// run feeds the script (one input line per prompt) to a fresh session.
func (h *harness) run(script string) error {
	s := New(strings.NewReader(script), &h.out, h.catalog, h.customers, h.ledger, h.store)
	return s.Run(context.Background())
}

func (h *harness) output() string {
	return h.out.String()
}

func TestSession_PenScenario(t *testing.T) {
	h := newHarness(t)

	// Add Pen (10.00, stock 5), order 3 of them with a 10% discount, then
	// review orders and revenue.
	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"8", "", "Pen", "3", "done", "10",
		"9",
		"10",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))

	out := h.output()
	assert.Contains(t, out, "Added Pen to the store.")
	assert.Contains(t, out, "Added 3 x Pen to the order.")
	assert.Contains(t, out, "Applied discount: 10%")
	assert.Contains(t, out, "- Pen: 3")
	assert.Contains(t, out, "Total: 27")
	assert.Contains(t, out, "Total revenue: 27")
	assert.Contains(t, out, "Thank you for using the app!")

	p, err := h.catalog.Find("Pen")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	orders := h.ledger.List()
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Finalized())
}

func TestSession_OrderForCustomer(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"5", "An", "0901",
		"8", "0901", "Pen", "2", "done", "0",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))

	assert.Contains(t, h.output(), "Creating order for customer: An")

	c, err := h.customers.FindByPhone("0901")
	require.NoError(t, err)
	require.Len(t, c.Orders(), 1)
	assert.Same(t, h.ledger.List()[0], c.Orders()[0])
}

func TestSession_OrderForUnknownCustomer(t *testing.T) {
	h := newHarness(t)

	// Unknown phone: the order is still created, just not attached to
	// anyone's history.
	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"8", "0999", "Pen", "1", "done", "0",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))

	assert.Contains(t, h.output(), "Customer does not exist.")
	assert.Equal(t, 1, h.ledger.Len())
}

func TestSession_InsufficientStock(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"1", "Pen", "10.00", "2",
		"8", "", "Pen", "10", "done", "0",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))

	assert.Contains(t, h.output(), "insufficient stock for Pen: 2 available, 10 requested")

	p, err := h.catalog.Find("Pen")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
	assert.Empty(t, h.ledger.List()[0].Items())
}

func TestSession_OrderUnknownProduct(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"8", "", "Ghost", "done", "0",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))
	assert.Contains(t, h.output(), "Product does not exist.")
}

func TestSession_OutOfRangeDiscountRejected(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"8", "", "Pen", "1", "done", "150",
		"9",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))

	out := h.output()
	assert.Contains(t, out, "discount percent must be between 0 and 100")
	// The order is saved without the rejected discount.
	assert.Contains(t, out, "Total: 10")
}

func TestSession_UpdateProduct_BlankKeepsField(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"4", "Pen", "12.50", "",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))
	assert.Contains(t, h.output(), "Updated Pen.")

	p, err := h.catalog.Find("Pen")
	require.NoError(t, err)
	assert.Equal(t, "12.5", p.Price.String())
	assert.Equal(t, 5, p.Stock)
}

func TestSession_RemoveMissingProduct(t *testing.T) {
	h := newHarness(t)

	script := "2\nGhost\n0\n"

	require.NoError(t, h.run(script))
	assert.Contains(t, h.output(), "Product not found: Ghost")
}

func TestSession_DuplicateProductRejected(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"1", "Pen", "12.00", "1",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))
	assert.Contains(t, h.output(), "Product already exists: Pen")
	assert.Equal(t, 1, h.catalog.Len())
}

func TestSession_EmptyListings(t *testing.T) {
	h := newHarness(t)

	script := "3\n7\n9\n0\n"

	require.NoError(t, h.run(script))

	out := h.output()
	assert.Contains(t, out, "No products.")
	assert.Contains(t, out, "No customers.")
	assert.Contains(t, out, "No orders.")
}

func TestSession_InvalidChoice(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("42\n0\n"))
	assert.Contains(t, h.output(), "Invalid option. Please try again.")
}

func TestSession_MalformedPriceIsFatal(t *testing.T) {
	h := newHarness(t)

	err := h.run("1\nPen\nnot-a-number\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse number")
}

func TestSession_MalformedQuantityIsFatal(t *testing.T) {
	h := newHarness(t)

	err := h.run("1\nPen\n10.00\nmany\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse integer")
}

func TestSession_SaveWritesSnapshot(t *testing.T) {
	h := newHarness(t)

	script := strings.Join([]string{
		"1", "Pen", "10.00", "5",
		"11",
		"0",
	}, "\n") + "\n"

	require.NoError(t, h.run(script))
	assert.Contains(t, h.output(), "Products saved.")

	products, err := h.store.Load()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pen", products[0].Name)
	assert.Equal(t, 5, products[0].Stock)
}

func TestSession_EndOfInputExitsCleanly(t *testing.T) {
	h := newHarness(t)

	// No explicit exit choice; the stream just ends.
	require.NoError(t, h.run("3\n"))
}

func TestSession_ContextCancelStopsLoop(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(strings.NewReader("3\n0\n"), &h.out, h.catalog, h.customers, h.ledger, h.store)
	err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
