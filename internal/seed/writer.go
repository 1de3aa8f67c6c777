package seed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cadendye/term-project/internal/codec"
)

// WriteDataset serializes the dataset into customers.txt and products.txt
// under the provided directory, in the same stanza format the store loads.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	customersPath := filepath.Join(dir, "customers.txt")
	if err := writeFile(customersPath, func(w io.Writer) error {
		return codec.EncodeCustomers(w, dataset.Customers)
	}); err != nil {
		return err
	}

	productsPath := filepath.Join(dir, "products.txt")
	return writeFile(productsPath, func(w io.Writer) error {
		return codec.EncodeProducts(w, dataset.Products)
	})
}

func writeFile(path string, encode func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
