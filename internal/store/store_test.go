package store

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadendye/term-project/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(Config{
		Paths: Paths{
			Customers:    filepath.Join(dir, "customers.txt"),
			Products:     filepath.Join(dir, "products.txt"),
			Transactions: filepath.Join(dir, "transactions.dat"),
			AuditLog:     filepath.Join(dir, "transactions.log"),
		},
		Seed: 1,
	})
}

func addCustomer(t *testing.T, s *Store, id, userName string, points int) *domain.Customer {
	t.Helper()
	customer, err := domain.NewCustomer(id, userName, "John", "Doe", 30, "1111-1111-1111", points)
	require.NoError(t, err)
	s.AddCustomer(customer)
	return customer
}

func addProduct(t *testing.T, s *Store, id, name string, price float64, inventory int) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(id, name, price, inventory, s.Registry())
	require.NoError(t, err)
	s.AddProduct(product)
	return product
}

func TestSaveAndLoadCustomers(t *testing.T) {
	t.Parallel()

	src := newTestStore(t)
	addCustomer(t, src, "CustID0000000001", "U111abcdef", 100)
	addCustomer(t, src, "CustID0000000002", "U222ghijkl", 150)
	require.NoError(t, src.SaveCustomers())

	dst := New(Config{Paths: src.paths, Seed: 1})
	require.NoError(t, dst.LoadCustomers())

	loaded := dst.Customers()
	require.Len(t, loaded, 2)
	assert.Equal(t, src.Customers(), loaded)

	// loaded IDs count as used for generation
	dst.mu.Lock()
	_, used := dst.usedCustomerIDs["CustID0000000001"]
	dst.mu.Unlock()
	assert.True(t, used)
}

func TestSaveAndLoadProducts(t *testing.T) {
	t.Parallel()

	src := newTestStore(t)
	addProduct(t, src, "Prod00001", "Laptop", 999.99, 10)
	addProduct(t, src, "Prod00002", "Phone", 499.99, 25)
	require.NoError(t, src.SaveProducts())

	dst := New(Config{Paths: src.paths, Seed: 1})
	require.NoError(t, dst.LoadProducts())
	assert.Equal(t, src.Products(), dst.Products())

	// the loaded IDs are claimed in the destination registry
	_, err := domain.NewProduct("Prod00001", "Clone", 1, 1, dst.Registry())
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSaveAndLoadTransactions(t *testing.T) {
	t.Parallel()

	src := newTestStore(t)
	src.AppendTransaction(domain.NewTransaction("Txn0000000001", "CustID0000000001", "Prod00001,Prod00002", 1499.98, 149))
	require.NoError(t, src.SaveTransactions())

	dst := New(Config{Paths: src.paths, Seed: 1})
	require.NoError(t, dst.LoadTransactions())
	assert.Equal(t, src.Transactions(), dst.Transactions())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.LoadCustomers()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.paths.Customers, nil, 0o644))

	require.NoError(t, s.LoadCustomers())
	assert.Empty(t, s.Customers())
}

func TestRemoveCustomer(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addCustomer(t, s, "CustID0000000001", "U111abcdef", 0)
	addCustomer(t, s, "CustID0000000002", "U222ghijkl", 0)

	assert.True(t, s.RemoveCustomer("CustID0000000001"))
	assert.False(t, s.RemoveCustomer("CustID0000000001"))

	remaining := s.Customers()
	require.Len(t, remaining, 1)
	assert.Equal(t, "CustID0000000002", remaining[0].ID())

	_, found := s.FindCustomer("CustID0000000001")
	assert.False(t, found)
}

func TestRemoveProductKeepsIDClaimed(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addProduct(t, s, "Prod00001", "Laptop", 999.99, 10)

	assert.True(t, s.RemoveProduct("Prod00001"))
	_, found := s.FindProduct("Prod00001")
	assert.False(t, found)

	// removal does not free the ID for reuse
	_, err := domain.NewProduct("Prod00001", "Laptop", 999.99, 10, s.Registry())
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "not unique", vErr.Reason)
}

func TestGenerateCustomerID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	pattern := regexp.MustCompile(`^CustID\d{10}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := s.GenerateCustomerID()
		assert.Regexp(t, pattern, id)
		_, dup := seen[id]
		assert.False(t, dup, "generated duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestCheckout(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	customer := addCustomer(t, s, "CustID0000000001", "U111abcdef", 0)
	laptop := addProduct(t, s, "Prod00001", "Laptop", 1000, 10)
	phone := addProduct(t, s, "Prod00002", "Phone", 500, 5)

	receipt, err := s.Checkout("CustID0000000001", []CartItem{
		{ProductID: "Prod00001", Quantity: 2},
		{ProductID: "Prod00002", Quantity: 1},
	}, 10)
	require.NoError(t, err)

	assert.Equal(t, 2500.0, receipt.TotalCost)
	assert.Equal(t, 25000, receipt.RewardPoints)
	assert.Equal(t, 25000, customer.RewardPoints())
	assert.Equal(t, 8, laptop.Inventory())
	assert.Equal(t, 4, phone.Inventory())

	transactions := s.Transactions()
	require.Len(t, transactions, 1)
	assert.Equal(t, "CustID0000000001", transactions[0].CustomerID)
	assert.Equal(t, "Prod00001,Prod00002", transactions[0].ProductIDs)
	assert.Equal(t, 2500.0, transactions[0].TotalAmount)

	audit, err := os.ReadFile(s.paths.AuditLog)
	require.NoError(t, err)
	assert.Contains(t, string(audit), "Customer ID: CustID0000000001")
	assert.Contains(t, string(audit), "  - Product ID: Prod00001, Quantity: 2")
	assert.Contains(t, string(audit), "Total Cost: $2500.00")
	assert.Contains(t, string(audit), "Reward Points Earned: 25000")
}

func TestCheckoutInsufficientStock(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addCustomer(t, s, "CustID0000000001", "U111abcdef", 0)
	laptop := addProduct(t, s, "Prod00001", "Laptop", 1000, 2)
	phone := addProduct(t, s, "Prod00002", "Phone", 500, 5)

	_, err := s.Checkout("CustID0000000001", []CartItem{
		{ProductID: "Prod00002", Quantity: 1},
		{ProductID: "Prod00001", Quantity: 3},
	}, 10)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// the failed cart left every count untouched
	assert.Equal(t, 2, laptop.Inventory())
	assert.Equal(t, 5, phone.Inventory())
	assert.Empty(t, s.Transactions())
}

func TestCheckoutSumsRepeatedCartItems(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addCustomer(t, s, "CustID0000000001", "U111abcdef", 0)
	laptop := addProduct(t, s, "Prod00001", "Laptop", 1000, 5)

	// each line fits the stock on its own, but together they exceed it
	_, err := s.Checkout("CustID0000000001", []CartItem{
		{ProductID: "Prod00001", Quantity: 3},
		{ProductID: "Prod00001", Quantity: 3},
	}, 10)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, laptop.Inventory())
	assert.Empty(t, s.Transactions())

	// repeated lines whose sum fits the stock still check out
	receipt, err := s.Checkout("CustID0000000001", []CartItem{
		{ProductID: "Prod00001", Quantity: 2},
		{ProductID: "Prod00001", Quantity: 3},
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, receipt.TotalCost)
	assert.Equal(t, 0, laptop.Inventory())
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	customer := addCustomer(t, s, "CustID0000000001", "U111abcdef", 0)

	_, err := s.Checkout("CustID0000000001", nil, 10)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, customer.RewardPoints())
	assert.Empty(t, s.Transactions())
}

func TestCheckoutUnknownCustomer(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Checkout("CustID0000000009", nil, 10)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestRedeemGift(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	customer := addCustomer(t, s, "CustID0000000001", "U111abcdef", 120)
	s.AddGift(domain.NewGift("Coffee Mug", 100))
	s.AddGift(domain.NewGift("Gift Card", 500))

	gift, err := s.RedeemGift("CustID0000000001", 0)
	require.NoError(t, err)
	assert.Equal(t, "Coffee Mug", gift.Name)
	assert.Equal(t, 20, customer.RewardPoints())

	_, err = s.RedeemGift("CustID0000000001", 1)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 20, customer.RewardPoints())

	_, err = s.RedeemGift("CustID0000000001", 5)
	assert.ErrorIs(t, err, ErrGiftNotFound)
}

func TestLogTransactionFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// the audit path's parent is a regular file, so every write fails
	s := New(Config{
		Paths: Paths{AuditLog: filepath.Join(blocker, "transactions.log")},
		Seed:  1,
	})

	assert.NotPanics(t, func() {
		s.LogTransaction("CustID0000000001", []CartItem{{ProductID: "Prod00001", Quantity: 1}}, 10, 100)
	})
}

func TestSaveAll(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	addCustomer(t, s, "CustID0000000001", "U111abcdef", 100)
	addProduct(t, s, "Prod00001", "Laptop", 999.99, 10)
	s.AppendTransaction(domain.NewTransaction("Txn0000000001", "CustID0000000001", "Prod00001", 999.99, 99))

	require.NoError(t, s.SaveAll())

	for _, path := range []string{s.paths.Customers, s.paths.Products, s.paths.Transactions} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
