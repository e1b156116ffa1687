package customer

// Registry is the owning collection of customers, keyed by phone number.
// Like the product catalog, it preserves insertion order and enforces key
// uniqueness. Not safe for concurrent use.
type Registry struct {
	customers []*Customer
	byPhone   map[string]*Customer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byPhone: make(map[string]*Customer),
	}
}

// Add registers a customer. It returns ErrAlreadyExists when the phone
// number is taken.
func (r *Registry) Add(c *Customer) error {
	if _, ok := r.byPhone[c.Phone]; ok {
		return ErrAlreadyExists
	}
	r.customers = append(r.customers, c)
	r.byPhone[c.Phone] = c
	return nil
}

// Remove deletes the customer with the given phone, or returns ErrNotFound.
func (r *Registry) Remove(phone string) error {
	if _, ok := r.byPhone[phone]; !ok {
		return ErrNotFound
	}
	delete(r.byPhone, phone)
	for i, c := range r.customers {
		if c.Phone == phone {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			break
		}
	}
	return nil
}

// FindByPhone returns the customer registered under the given phone number.
func (r *Registry) FindByPhone(phone string) (*Customer, error) {
	c, ok := r.byPhone[phone]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// List returns the customers in insertion order.
func (r *Registry) List() []*Customer {
	out := make([]*Customer, len(r.customers))
	copy(out, r.customers)
	return out
}

// Len reports the number of registered customers.
func (r *Registry) Len() int {
	return len(r.customers)
}
