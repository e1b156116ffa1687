// Package session implements the interactive, menu-driven console that
// drives the catalog, customer registry, order ledger, and snapshot store.
// It owns all prompting and text parsing; domain state lives in the injected
// collections.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/catalog"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/customer"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/domain/order"
	"github.com/nguyenbabinh2005/qu-n-l-b-n-u-ng/internal/storage/snapshot"
)

// errInputClosed signals that the input stream ended; the session treats it
// as a clean exit.
var errInputClosed = errors.New("input closed")

const menuText = `
--- MENU ---
1. Add product
2. Remove product
3. List products
4. Update product
5. Add customer
6. Remove customer
7. List customers
8. Create order
9. List orders
10. Revenue report
11. Save data
0. Exit
`

// Session runs the numbered menu loop over the injected collections. Domain
// conditions (not found, insufficient stock, duplicates) are reported to the
// user and the loop continues; malformed numeric input is fatal and
// propagates out of Run.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	catalog   *catalog.Catalog
	customers *customer.Registry
	ledger    *order.Ledger
	store     *snapshot.Store
}

// New creates a session reading from in and writing prompts, listings, and
// confirmations to out.
func New(
	in io.Reader,
	out io.Writer,
	cat *catalog.Catalog,
	customers *customer.Registry,
	ledger *order.Ledger,
	store *snapshot.Store,
) *Session {
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		catalog:   cat,
		customers: customers,
		ledger:    ledger,
		store:     store,
	}
}

// Run drives the menu until the user exits, the input stream ends, or a
// fatal condition occurs. The context is checked between menu iterations.
func (s *Session) Run(ctx context.Context) error {
	lg := zctx.From(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, menuText)
		choice, err := s.readLine("Select an option: ")
		if err != nil {
			return closedAsExit(err)
		}

		lg.Debug("menu choice", zap.String("choice", choice))

		if choice == "0" {
			fmt.Fprintln(s.out, "Thank you for using the app!")
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			return closedAsExit(err)
		}
	}
}

func (s *Session) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return s.addProduct()
	case "2":
		return s.removeProduct()
	case "3":
		return s.listProducts()
	case "4":
		return s.updateProduct()
	case "5":
		return s.addCustomer()
	case "6":
		return s.removeCustomer()
	case "7":
		return s.listCustomers()
	case "8":
		return s.createOrder()
	case "9":
		return s.listOrders()
	case "10":
		return s.revenueReport()
	case "11":
		return s.save(ctx)
	default:
		fmt.Fprintln(s.out, "Invalid option. Please try again.")
		return nil
	}
}

// closedAsExit converts end-of-input into a clean session exit.
func closedAsExit(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

func (s *Session) addProduct() error {
	name, err := s.readLine("Product name: ")
	if err != nil {
		return err
	}
	price, err := s.readDecimal("Product price: ")
	if err != nil {
		return err
	}
	stock, err := s.readInt("Stock quantity: ")
	if err != nil {
		return err
	}

	p := &catalog.Product{Name: name, Price: price, Stock: stock}
	switch err := s.catalog.Add(p); {
	case errors.Is(err, catalog.ErrAlreadyExists):
		fmt.Fprintf(s.out, "Product already exists: %s\n", name)
	case err != nil:
		fmt.Fprintf(s.out, "Cannot add product: %s\n", err)
	default:
		fmt.Fprintf(s.out, "Added %s to the store.\n", name)
	}
	return nil
}

func (s *Session) removeProduct() error {
	name, err := s.readLine("Product name to remove: ")
	if err != nil {
		return err
	}

	if err := s.catalog.Remove(name); errors.Is(err, catalog.ErrNotFound) {
		fmt.Fprintf(s.out, "Product not found: %s\n", name)
		return nil
	}
	fmt.Fprintf(s.out, "Removed %s from the store.\n", name)
	return nil
}

func (s *Session) listProducts() error {
	fmt.Fprintln(s.out, "Product list:")
	products := s.catalog.List()
	if len(products) == 0 {
		fmt.Fprintln(s.out, "No products.")
		return nil
	}
	for _, p := range products {
		fmt.Fprintln(s.out, p)
	}
	return nil
}

func (s *Session) updateProduct() error {
	name, err := s.readLine("Product name to update: ")
	if err != nil {
		return err
	}
	price, err := s.readOptionalDecimal("New price (blank to keep): ")
	if err != nil {
		return err
	}
	stock, err := s.readOptionalInt("New stock (blank to keep): ")
	if err != nil {
		return err
	}

	switch err := s.catalog.Update(name, price, stock); {
	case errors.Is(err, catalog.ErrNotFound):
		fmt.Fprintf(s.out, "Product not found: %s\n", name)
	case err != nil:
		fmt.Fprintf(s.out, "Cannot update product: %s\n", err)
	default:
		fmt.Fprintf(s.out, "Updated %s.\n", name)
	}
	return nil
}

func (s *Session) addCustomer() error {
	name, err := s.readLine("Customer name: ")
	if err != nil {
		return err
	}
	phone, err := s.readLine("Phone number: ")
	if err != nil {
		return err
	}

	if err := s.customers.Add(customer.New(name, phone)); errors.Is(err, customer.ErrAlreadyExists) {
		fmt.Fprintf(s.out, "A customer with phone %s already exists.\n", phone)
		return nil
	}
	fmt.Fprintf(s.out, "Added customer: %s\n", name)
	return nil
}

func (s *Session) removeCustomer() error {
	phone, err := s.readLine("Phone number of customer to remove: ")
	if err != nil {
		return err
	}

	if err := s.customers.Remove(phone); errors.Is(err, customer.ErrNotFound) {
		fmt.Fprintf(s.out, "Customer not found: %s\n", phone)
		return nil
	}
	fmt.Fprintf(s.out, "Removed customer with phone: %s\n", phone)
	return nil
}

func (s *Session) listCustomers() error {
	fmt.Fprintln(s.out, "Customer list:")
	customers := s.customers.List()
	if len(customers) == 0 {
		fmt.Fprintln(s.out, "No customers.")
		return nil
	}
	for _, c := range customers {
		fmt.Fprintln(s.out, c)
	}
	return nil
}

func (s *Session) createOrder() error {
	o := order.New()

	phone, err := s.readLine("Customer phone (blank for none): ")
	if err != nil {
		return err
	}
	var cust *customer.Customer
	if phone != "" {
		c, err := s.customers.FindByPhone(phone)
		if errors.Is(err, customer.ErrNotFound) {
			fmt.Fprintln(s.out, "Customer does not exist.")
		} else {
			cust = c
			fmt.Fprintf(s.out, "Creating order for customer: %s\n", c.Name)
		}
	}

	for {
		name, err := s.readLine("Product name to add (or 'done' to finish): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(name, "done") {
			break
		}

		p, err := s.catalog.Find(name)
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Fprintln(s.out, "Product does not exist.")
			continue
		}

		quantity, err := s.readInt("Quantity: ")
		if err != nil {
			return err
		}

		switch err := o.AddItem(p, quantity); {
		case err == nil:
			fmt.Fprintf(s.out, "Added %d x %s to the order.\n", quantity, name)
		default:
			fmt.Fprintln(s.out, err)
		}
	}

	discount, err := s.readDecimal("Discount percent (0 for none): ")
	if err != nil {
		return err
	}
	if discount.IsPositive() {
		if err := o.ApplyDiscount(discount); err != nil {
			fmt.Fprintln(s.out, err)
		} else {
			fmt.Fprintf(s.out, "Applied discount: %s%%\n", discount)
		}
	}

	s.ledger.Add(o)
	if cust != nil {
		cust.AddOrder(o)
	}
	fmt.Fprintln(s.out, "Order saved.")
	return nil
}

func (s *Session) listOrders() error {
	orders := s.ledger.List()
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "No orders.")
		return nil
	}
	for i, o := range orders {
		fmt.Fprintf(s.out, "Order %d:\n", i+1)
		if rendered := o.String(); rendered != "" {
			fmt.Fprintln(s.out, rendered)
		}
		fmt.Fprintf(s.out, "Total: %s\n", o.Total())
	}
	return nil
}

func (s *Session) revenueReport() error {
	fmt.Fprintf(s.out, "Total revenue: %s\n", order.Revenue(s.ledger.List()))
	return nil
}

func (s *Session) save(ctx context.Context) error {
	if err := s.store.Save(s.catalog.Products()); err != nil {
		zctx.From(ctx).Error("save snapshot", zap.Error(err))
		fmt.Fprintf(s.out, "Failed to save products: %s\n", err)
		return nil
	}
	zctx.From(ctx).Info("snapshot saved",
		zap.String("path", s.store.Path()),
		zap.Int("products", s.catalog.Len()),
	)
	fmt.Fprintln(s.out, "Products saved.")
	return nil
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readDecimal reads a required decimal field. Malformed input is fatal: no
// retry loop wraps numeric parsing.
func (s *Session) readDecimal(prompt string) (decimal.Decimal, error) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse number %q", raw)
	}
	return d, nil
}

func (s *Session) readInt(prompt string) (int, error) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse integer %q", raw)
	}
	return n, nil
}

// readOptionalDecimal returns nil when the field is left blank, meaning
// "no change".
func (s *Session) readOptionalDecimal(prompt string) (*decimal.Decimal, error) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse number %q", raw)
	}
	return &d, nil
}

func (s *Session) readOptionalInt(prompt string) (*int, error) {
	raw, err := s.readLine(prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "parse integer %q", raw)
	}
	return &n, nil
}
