// Package store is the load/save orchestration layer between the in-memory
// record collections and their data files.
package store

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/cadendye/term-project/internal/codec"
	"github.com/cadendye/term-project/internal/domain"
)

// Lookup and mutation failures surfaced to the menu layer.
var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrGiftNotFound       = errors.New("gift not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientPoints = errors.New("insufficient reward points")
)

// Paths names the files the store reads and writes.
type Paths struct {
	Customers    string
	Products     string
	Transactions string
	AuditLog     string
}

// Config carries the store's collaborators and tunables.
type Config struct {
	Paths           Paths
	AuditMaxSizeMB  int
	AuditMaxBackups int
	Logger          *logrus.Logger
	Seed            int64 // rand seed for ID generation; 0 means current time
}

// CartItem is one line of a checkout: a product and a quantity.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Receipt summarizes a completed checkout.
type Receipt struct {
	TransactionID string
	TotalCost     float64
	RewardPoints  int
}

// Store owns the ordered record collections, the product ID registry, and the
// customer ID pool. Every exported operation takes the store lock, so a
// multi-threaded host gets the required serialization; none of the underlying
// operations are reentrant-safe on their own.
type Store struct {
	mu    sync.Mutex
	log   *logrus.Logger
	paths Paths
	rand  *rand.Rand
	audit io.Writer

	registry        *domain.IDRegistry
	usedCustomerIDs map[string]struct{}

	customers    []*domain.Customer
	products     []*domain.Product
	transactions []*domain.Transaction
	gifts        []*domain.Gift
}

// New builds an empty store. The audit trail is written through a rotating
// file writer at cfg.Paths.AuditLog; the structured data files are only
// touched by the explicit Load/Save operations.
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxSize := cfg.AuditMaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}

	return &Store{
		log:   logger,
		paths: cfg.Paths,
		rand:  rand.New(rand.NewSource(seed)),
		audit: &lumberjack.Logger{
			Filename:   cfg.Paths.AuditLog,
			MaxSize:    maxSize,
			MaxBackups: cfg.AuditMaxBackups,
		},
		registry:        domain.NewIDRegistry(),
		usedCustomerIDs: make(map[string]struct{}),
	}
}

// Registry exposes the product ID registry for callers that construct
// products outside the store.
func (s *Store) Registry() *domain.IDRegistry {
	return s.registry
}

// LoadCustomers replaces the in-memory customer collection with the contents
// of the customers file, registering each loaded ID as used.
func (s *Store) LoadCustomers() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.paths.Customers)
	if err != nil {
		return fmt.Errorf("open %s for loading customers: %w", s.paths.Customers, err)
	}
	defer file.Close()

	customers, err := codec.DecodeCustomers(file)
	if err != nil {
		return fmt.Errorf("load customers from %s: %w", s.paths.Customers, err)
	}

	s.customers = customers
	for _, c := range customers {
		s.usedCustomerIDs[c.ID()] = struct{}{}
	}
	return nil
}

// SaveCustomers writes the customer collection to the customers file,
// truncating any existing content.
func (s *Store) SaveCustomers() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(s.paths.Customers)
	if err != nil {
		return fmt.Errorf("open %s for saving customers: %w", s.paths.Customers, err)
	}
	defer file.Close()

	if err := codec.EncodeCustomers(file, s.customers); err != nil {
		return fmt.Errorf("save customers to %s: %w", s.paths.Customers, err)
	}
	return nil
}

// LoadProducts replaces the in-memory product collection with the contents of
// the products file. Each loaded product claims its ID in the registry, so
// loading the same file twice against one store fails on uniqueness.
func (s *Store) LoadProducts() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.paths.Products)
	if err != nil {
		return fmt.Errorf("open %s for loading products: %w", s.paths.Products, err)
	}
	defer file.Close()

	products, err := codec.DecodeProducts(file, s.registry)
	if err != nil {
		return fmt.Errorf("load products from %s: %w", s.paths.Products, err)
	}

	s.products = products
	return nil
}

// SaveProducts writes the product collection to the products file.
func (s *Store) SaveProducts() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(s.paths.Products)
	if err != nil {
		return fmt.Errorf("open %s for saving products: %w", s.paths.Products, err)
	}
	defer file.Close()

	if err := codec.EncodeProducts(file, s.products); err != nil {
		return fmt.Errorf("save products to %s: %w", s.paths.Products, err)
	}
	return nil
}

// LoadTransactions replaces the in-memory transaction log with the contents
// of the structured transactions file.
func (s *Store) LoadTransactions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.paths.Transactions)
	if err != nil {
		return fmt.Errorf("open %s for loading transactions: %w", s.paths.Transactions, err)
	}
	defer file.Close()

	transactions, err := codec.DecodeTransactions(file)
	if err != nil {
		return fmt.Errorf("load transactions from %s: %w", s.paths.Transactions, err)
	}

	s.transactions = transactions
	return nil
}

// SaveTransactions writes the structured transaction collection to its file.
// This is distinct from the append-only audit trail kept by LogTransaction.
func (s *Store) SaveTransactions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(s.paths.Transactions)
	if err != nil {
		return fmt.Errorf("open %s for saving transactions: %w", s.paths.Transactions, err)
	}
	defer file.Close()

	if err := codec.EncodeTransactions(file, s.transactions); err != nil {
		return fmt.Errorf("save transactions to %s: %w", s.paths.Transactions, err)
	}
	return nil
}

// SaveAll persists every collection, stopping at the first failure.
func (s *Store) SaveAll() error {
	if err := s.SaveTransactions(); err != nil {
		return err
	}
	if err := s.SaveCustomers(); err != nil {
		return err
	}
	return s.SaveProducts()
}

// AddCustomer appends c to the collection and marks its ID as used.
func (s *Store) AddCustomer(c *domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usedCustomerIDs[c.ID()] = struct{}{}
	s.customers = append(s.customers, c)
}

// FindCustomer returns the customer with the given ID.
func (s *Store) FindCustomer(id string) (*domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findCustomerLocked(id)
}

func (s *Store) findCustomerLocked(id string) (*domain.Customer, bool) {
	for _, c := range s.customers {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// RemoveCustomer deletes the customer with the given ID, preserving the order
// of the remaining records. It reports whether a customer was removed.
func (s *Store) RemoveCustomer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.customers {
		if c.ID() == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			return true
		}
	}
	return false
}

// Customers returns the customer collection in insertion order.
func (s *Store) Customers() []*domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Customer(nil), s.customers...)
}

// AddProduct appends p to the catalog.
func (s *Store) AddProduct(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// FindProduct returns the product with the given ID.
func (s *Store) FindProduct(id string) (*domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findProductLocked(id)
}

func (s *Store) findProductLocked(id string) (*domain.Product, bool) {
	for _, p := range s.products {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// RemoveProduct deletes the product with the given ID. The ID stays claimed
// in the registry: a removed product's ID cannot be reissued.
func (s *Store) RemoveProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID() == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// Products returns the catalog in insertion order.
func (s *Store) Products() []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Product(nil), s.products...)
}

// AppendTransaction adds t to the structured transaction log.
func (s *Store) AppendTransaction(t *domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
}

// Transactions returns the structured transaction log in insertion order.
func (s *Store) Transactions() []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Transaction(nil), s.transactions...)
}

// AddGift appends g to the redemption catalog.
func (s *Store) AddGift(g *domain.Gift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gifts = append(s.gifts, g)
}

// Gifts returns the redemption catalog in insertion order.
func (s *Store) Gifts() []*domain.Gift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Gift(nil), s.gifts...)
}

// GenerateCustomerID returns a fresh "CustID" + 10 digit identifier, retried
// until it does not collide with any ID seen this run, and marks it used.
func (s *Store) GenerateCustomerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id := fmt.Sprintf("CustID%010d", s.rand.Int63n(1e10))
		if _, taken := s.usedCustomerIDs[id]; taken {
			continue
		}
		s.usedCustomerIDs[id] = struct{}{}
		return id
	}
}

// Checkout debits inventory for each cart item, awards reward points to the
// customer, appends a structured transaction, and writes the audit block. The
// whole cart is checked against stock before any inventory moves — quantities
// for repeated product IDs are summed — so a failed checkout leaves every
// count untouched. An empty cart is rejected.
func (s *Store) Checkout(customerID string, items []CartItem, pointsPerDollar float64) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.findCustomerLocked(customerID)
	if !ok {
		return Receipt{}, fmt.Errorf("checkout for %s: %w", customerID, ErrCustomerNotFound)
	}
	if len(items) == 0 {
		return Receipt{}, fmt.Errorf("checkout for %s: %w", customerID, ErrEmptyCart)
	}

	var total float64
	needed := make(map[string]int, len(items))
	products := make([]*domain.Product, len(items))
	for i, item := range items {
		product, ok := s.findProductLocked(item.ProductID)
		if !ok {
			return Receipt{}, fmt.Errorf("checkout item %s: %w", item.ProductID, ErrProductNotFound)
		}
		if item.Quantity <= 0 {
			return Receipt{}, fmt.Errorf("checkout item %s quantity %d: %w", item.ProductID, item.Quantity, ErrInsufficientStock)
		}
		needed[item.ProductID] += item.Quantity
		if needed[item.ProductID] > product.Inventory() {
			return Receipt{}, fmt.Errorf("checkout item %s quantity %d: %w", item.ProductID, needed[item.ProductID], ErrInsufficientStock)
		}
		products[i] = product
		total += product.Price() * float64(item.Quantity)
	}

	for i, item := range items {
		products[i].UpdateInventory(-item.Quantity)
	}

	points := int(total * pointsPerDollar)
	customer.AddRewardPoints(points)

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	receipt := Receipt{
		TransactionID: s.generateTransactionIDLocked(),
		TotalCost:     total,
		RewardPoints:  points,
	}
	s.transactions = append(s.transactions, domain.NewTransaction(
		receipt.TransactionID, customerID, strings.Join(productIDs, ","), total, points))

	s.logTransactionLocked(customerID, items, total, points)
	return receipt, nil
}

// RedeemGift spends the customer's points on the gift at the given catalog
// index. Balances below the gift's threshold are rejected before any debit.
func (s *Store) RedeemGift(customerID string, giftIndex int) (*domain.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.findCustomerLocked(customerID)
	if !ok {
		return nil, fmt.Errorf("redeem for %s: %w", customerID, ErrCustomerNotFound)
	}
	if giftIndex < 0 || giftIndex >= len(s.gifts) {
		return nil, fmt.Errorf("redeem gift %d: %w", giftIndex, ErrGiftNotFound)
	}

	gift := s.gifts[giftIndex]
	if customer.RewardPoints() < gift.RequiredPoints {
		return nil, fmt.Errorf("redeem %s with %d points: %w", gift.Name, customer.RewardPoints(), ErrInsufficientPoints)
	}

	customer.AddRewardPoints(-gift.RequiredPoints)
	return gift, nil
}

// LogTransaction appends a human-readable block describing a checkout to the
// audit trail. The block is not round-trippable; the structured transactions
// file is the machine-readable record. A failed write is reported as a
// warning and swallowed so that it never aborts the checkout that produced it.
func (s *Store) LogTransaction(customerID string, items []CartItem, totalCost float64, rewardPoints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logTransactionLocked(customerID, items, totalCost, rewardPoints)
}

func (s *Store) logTransactionLocked(customerID string, items []CartItem, totalCost float64, rewardPoints int) {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer ID: %s\n", customerID)
	b.WriteString("Items Purchased:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  - Product ID: %s, Quantity: %d\n", item.ProductID, item.Quantity)
	}
	fmt.Fprintf(&b, "Total Cost: $%.2f\n", totalCost)
	fmt.Fprintf(&b, "Reward Points Earned: %d\n\n", rewardPoints)

	if _, err := io.WriteString(s.audit, b.String()); err != nil {
		s.log.WithError(err).WithField("customer_id", customerID).Warn("transaction audit log write failed")
	}
}

func (s *Store) generateTransactionIDLocked() string {
	return fmt.Sprintf("Txn%010d", s.rand.Int63n(1e10))
}
