// Package seed produces deterministic sample data in the registry's record
// formats, for demos and test fixtures.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cadendye/term-project/internal/domain"
)

// Config controls how much sample data is generated.
type Config struct {
	Customers int
	Products  int
	Gifts     int
	Seed      int64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{
		Customers: 10,
		Products:  8,
		Gifts:     4,
	}
}

// Dataset contains the generated records.
type Dataset struct {
	Customers []*domain.Customer
	Products  []*domain.Product
	Gifts     []*domain.Gift
}

// Generator produces valid sample records.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.Customers <= 0 {
		cfg.Customers = DefaultConfig().Customers
	}
	if cfg.Products <= 0 {
		cfg.Products = DefaultConfig().Products
	}
	if cfg.Gifts <= 0 {
		cfg.Gifts = DefaultConfig().Gifts
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

var (
	firstNames = []string{"John", "Jane", "Avery", "Morgan", "Riley", "Jordan", "Casey", "Quinn", "Harper", "Rowan"}
	lastNames  = []string{"Doe", "Smith", "Nguyen", "Patel", "Garcia", "Kim", "Okafor", "Larsen", "Moreau", "Tanaka"}
	products   = []string{"Laptop", "Phone", "Headphones", "Keyboard", "Monitor", "Webcam", "Charger", "Backpack", "Mouse", "Speaker"}
	gifts      = []string{"Coffee Mug", "Tote Bag", "Gift Card", "Water Bottle", "Notebook", "Sticker Pack"}
)

// Generate synthesises customers, products, and gifts. Every record passes
// the domain validators; product IDs are claimed against a fresh registry.
func (g *Generator) Generate() (Dataset, error) {
	dataset := Dataset{
		Customers: make([]*domain.Customer, 0, g.cfg.Customers),
		Products:  make([]*domain.Product, 0, g.cfg.Products),
		Gifts:     make([]*domain.Gift, 0, g.cfg.Gifts),
	}

	for i := 0; i < g.cfg.Customers; i++ {
		id := fmt.Sprintf("CustID%010d", i+1)
		first := firstNames[g.rand.Intn(len(firstNames))]
		last := lastNames[g.rand.Intn(len(lastNames))]
		customer, err := domain.NewCustomer(
			id,
			fmt.Sprintf("U%03dmember%04d", g.rand.Intn(1000), i+1),
			first,
			last,
			18+g.rand.Intn(83),
			g.randomCardNumber(),
			g.rand.Intn(500),
		)
		if err != nil {
			return Dataset{}, fmt.Errorf("generate customer %s: %w", id, err)
		}
		dataset.Customers = append(dataset.Customers, customer)
	}

	registry := domain.NewIDRegistry()
	for i := 0; i < g.cfg.Products; i++ {
		id := fmt.Sprintf("Prod%05d", i+1)
		price := float64(100+g.rand.Intn(99900)) / 100
		product, err := domain.NewProduct(id, products[i%len(products)], price, g.rand.Intn(100), registry)
		if err != nil {
			return Dataset{}, fmt.Errorf("generate product %s: %w", id, err)
		}
		dataset.Products = append(dataset.Products, product)
	}

	for i := 0; i < g.cfg.Gifts; i++ {
		dataset.Gifts = append(dataset.Gifts, domain.NewGift(gifts[i%len(gifts)], 50*(i+1)))
	}

	return dataset, nil
}

func (g *Generator) randomCardNumber() string {
	return fmt.Sprintf("%d%03d-%04d-%04d", 1+g.rand.Intn(9), g.rand.Intn(1000), g.rand.Intn(10000), g.rand.Intn(10000))
}
