package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadendye/term-project/internal/codec"
	"github.com/cadendye/term-project/internal/domain"
)

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	cfg := Config{Customers: 5, Products: 5, Gifts: 3, Seed: 42}

	first, err := New(cfg).Generate()
	require.NoError(t, err)
	second, err := New(cfg).Generate()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateProducesValidRecords(t *testing.T) {
	t.Parallel()

	dataset, err := New(Config{Customers: 20, Products: 10, Gifts: 4, Seed: 7}).Generate()
	require.NoError(t, err)
	require.Len(t, dataset.Customers, 20)
	require.Len(t, dataset.Products, 10)
	require.Len(t, dataset.Gifts, 4)

	for _, c := range dataset.Customers {
		assert.True(t, domain.IsUserNameValid(c.UserName()), "username %q", c.UserName())
		assert.True(t, domain.IsNameValid(c.FirstName()))
		assert.True(t, domain.IsNameValid(c.LastName()))
		assert.True(t, domain.IsAgeValid(c.Age()))
		assert.True(t, domain.IsCreditCardValid(c.CreditCardNumber()), "card %q", c.CreditCardNumber())
	}
	for _, p := range dataset.Products {
		assert.True(t, domain.IsProductIDValid(p.ID()))
		assert.True(t, domain.IsProductPriceValid(p.Price()))
		assert.True(t, domain.IsProductInventoryValid(p.Inventory()))
	}
}

func TestWriteDatasetRoundTrips(t *testing.T) {
	t.Parallel()

	dataset, err := New(Config{Customers: 3, Products: 3, Gifts: 2, Seed: 9}).Generate()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteDataset(dataset, dir))

	customersFile, err := os.Open(filepath.Join(dir, "customers.txt"))
	require.NoError(t, err)
	defer customersFile.Close()
	customers, err := codec.DecodeCustomers(customersFile)
	require.NoError(t, err)
	assert.Equal(t, dataset.Customers, customers)

	productsFile, err := os.Open(filepath.Join(dir, "products.txt"))
	require.NoError(t, err)
	defer productsFile.Close()
	products, err := codec.DecodeProducts(productsFile, domain.NewIDRegistry())
	require.NoError(t, err)
	assert.Equal(t, dataset.Products, products)
}
