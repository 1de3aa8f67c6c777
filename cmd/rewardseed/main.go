package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cadendye/term-project/internal/seed"
)

func main() {
	cfg := seed.DefaultConfig()
	var (
		customers = flag.Int("customers", cfg.Customers, "number of customers to generate")
		products  = flag.Int("products", cfg.Products, "number of products to generate")
		gifts     = flag.Int("gifts", cfg.Gifts, "number of gifts to generate")
		randSeed  = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir = flag.String("output-dir", "data", "directory to write customers.txt and products.txt")
	)
	flag.Parse()

	gen := seed.New(seed.Config{
		Customers: *customers,
		Products:  *products,
		Gifts:     *gifts,
		Seed:      *randSeed,
	})

	dataset, err := gen.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := seed.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d customers and %d products into %s\n", len(dataset.Customers), len(dataset.Products), *outputDir)
}
