package domain

// IDRegistry tracks every product ID issued during the process lifetime.
// Removing a product from a collection does not release its ID: once claimed,
// an ID stays claimed until the registry itself is discarded. The registry is
// not safe for concurrent use; callers serialize access.
type IDRegistry struct {
	issued map[string]struct{}
}

// NewIDRegistry returns an empty registry.
func NewIDRegistry() *IDRegistry {
	return &IDRegistry{issued: make(map[string]struct{})}
}

// Claim records id as issued. It returns false if the id was already claimed.
func (r *IDRegistry) Claim(id string) bool {
	if _, ok := r.issued[id]; ok {
		return false
	}
	r.issued[id] = struct{}{}
	return true
}

// Issued reports whether id has ever been claimed.
func (r *IDRegistry) Issued(id string) bool {
	_, ok := r.issued[id]
	return ok
}

// Len returns the number of claimed IDs.
func (r *IDRegistry) Len() int { return len(r.issued) }

// Product is a catalog entry. The ID is unique across every product
// constructed against the same registry, live or since removed.
type Product struct {
	id        string
	name      string
	price     float64
	inventory int
}

// NewProduct validates the fields, then claims the ID in reg. The claim only
// happens once every format check has passed, so a rejected product leaves the
// registry untouched.
func NewProduct(id, name string, price float64, inventory int, reg *IDRegistry) (*Product, error) {
	if !IsProductIDValid(id) {
		return nil, invalid("productID", "must be 'Prod' followed by five digits")
	}
	if !IsProductPriceValid(price) {
		return nil, invalid("productPrice", "must be greater than zero")
	}
	if !IsProductInventoryValid(inventory) {
		return nil, invalid("productInventory", "must not be negative")
	}
	if !reg.Claim(id) {
		return nil, invalid("productID", "not unique")
	}

	return &Product{
		id:        id,
		name:      name,
		price:     price,
		inventory: inventory,
	}, nil
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the product's display name.
func (p *Product) Name() string { return p.name }

// Price returns the unit price.
func (p *Product) Price() float64 { return p.price }

// Inventory returns the current stock count.
func (p *Product) Inventory() int { return p.inventory }

// UpdateInventory applies delta to the stock count, clamping at zero.
func (p *Product) UpdateInventory(delta int) {
	p.inventory += delta
	if p.inventory < 0 {
		p.inventory = 0
	}
}
