package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cadendye/term-project/internal/config"
	"github.com/cadendye/term-project/internal/domain"
	"github.com/cadendye/term-project/internal/logging"
	"github.com/cadendye/term-project/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to yaml configuration file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	st := store.New(store.Config{
		Paths: store.Paths{
			Customers:    cfg.Storage.CustomersPath,
			Products:     cfg.Storage.ProductsPath,
			Transactions: cfg.Storage.TransactionsPath,
			AuditLog:     cfg.Storage.AuditLogPath,
		},
		AuditMaxSizeMB:  cfg.Storage.AuditMaxSizeMB,
		AuditMaxBackups: cfg.Storage.AuditMaxBackups,
		Logger:          logger,
	})

	// A missing or unreadable file at startup is tolerated; the run starts
	// from an empty collection.
	if err := st.LoadCustomers(); err != nil {
		logger.WithError(err).Warn("starting with empty customer list")
	} else {
		logger.WithField("count", len(st.Customers())).Info("loaded customers")
	}
	if err := st.LoadProducts(); err != nil {
		logger.WithError(err).Warn("starting with empty product catalog")
	} else {
		logger.WithField("count", len(st.Products())).Info("loaded products")
	}
	if err := st.LoadTransactions(); err != nil {
		logger.WithError(err).Warn("starting with empty transaction log")
	} else {
		logger.WithField("count", len(st.Transactions())).Info("loaded transactions")
	}

	app := &app{
		store:           st,
		log:             logger,
		in:              bufio.NewScanner(os.Stdin),
		pointsPerDollar: cfg.Rewards.PointsPerDollar,
	}
	app.run()
}

type app struct {
	store           *store.Store
	log             *logrus.Logger
	in              *bufio.Scanner
	pointsPerDollar float64
}

func (a *app) run() {
	for {
		fmt.Println("\n--- Customer Reward System Menu ---")
		fmt.Println("1. Customer Registration")
		fmt.Println("2. Customer Removal")
		fmt.Println("3. Product Addition")
		fmt.Println("4. Product Removal")
		fmt.Println("5. Shopping")
		fmt.Println("6. View Customer by Customer ID")
		fmt.Println("7. Redeem Rewards")
		fmt.Println("0. Exit")

		switch a.readLine("Select an option: ") {
		case "1":
			a.registerCustomer()
		case "2":
			a.removeCustomer()
		case "3":
			a.addProduct()
		case "4":
			a.removeProduct()
		case "5":
			a.shopping()
		case "6":
			a.viewCustomer()
		case "7":
			a.rewardsMenu()
		case "0":
			fmt.Println("Saving files and exiting program.")
			if err := a.store.SaveAll(); err != nil {
				a.log.WithError(err).Error("saving data files failed")
			}
			return
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

func (a *app) registerCustomer() {
	userName := a.readLine("Enter username (format: 'U' followed by up to 3 digits, then 6+ characters): ")
	firstName := a.readLine("Enter first name: ")
	lastName := a.readLine("Enter last name: ")
	age, ok := a.readInt("Enter age (18-100): ")
	if !ok {
		return
	}
	creditCard := a.readLine("Enter credit card number (format: xxxx-xxxx-xxxx): ")

	id := a.store.GenerateCustomerID()
	customer, err := domain.NewCustomer(id, userName, firstName, lastName, age, creditCard, 0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	a.store.AddCustomer(customer)
	fmt.Println("Customer registered successfully.")
	fmt.Printf("CustomerID: %s\n", id)
}

func (a *app) removeCustomer() {
	id := a.readLine("Enter the Customer ID to remove: ")
	if a.store.RemoveCustomer(id) {
		fmt.Println("Customer removed successfully.")
		return
	}
	fmt.Printf("Customer with ID %s not found.\n", id)
}

func (a *app) addProduct() {
	id := a.readLine("Enter Product ID (format 'Prod' followed by 5 digits): ")
	name := a.readLine("Enter Product Name: ")
	price, ok := a.readFloat("Enter Product Price: ")
	if !ok {
		return
	}
	inventory, ok := a.readInt("Enter Product Inventory: ")
	if !ok {
		return
	}

	product, err := domain.NewProduct(id, name, price, inventory, a.store.Registry())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	a.store.AddProduct(product)
	fmt.Println("Product added successfully.")
}

func (a *app) removeProduct() {
	id := a.readLine("Enter the Product ID to remove: ")
	if a.store.RemoveProduct(id) {
		fmt.Println("Product removed successfully.")
		return
	}
	fmt.Printf("Product with ID %s not found.\n", id)
}

func (a *app) shopping() {
	customerID := a.readLine("Enter Customer ID: ")
	if _, ok := a.store.FindCustomer(customerID); !ok {
		fmt.Println("Customer not found.")
		return
	}

	var cart []store.CartItem
	for {
		productID := a.readLine("Enter Product ID (or 'done' to finish): ")
		if productID == "done" {
			break
		}

		product, ok := a.store.FindProduct(productID)
		if !ok {
			fmt.Println("Invalid Product ID.")
			continue
		}

		quantity, ok := a.readInt("Enter Quantity: ")
		if !ok {
			continue
		}
		if quantity <= 0 || quantity > product.Inventory() {
			fmt.Println("Invalid quantity.")
			continue
		}

		cart = append(cart, store.CartItem{ProductID: productID, Quantity: quantity})
	}

	if len(cart) == 0 {
		fmt.Println("No products selected.")
		return
	}

	receipt, err := a.store.Checkout(customerID, cart, a.pointsPerDollar)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Total: $%.2f, Reward Points Earned: %d\n", receipt.TotalCost, receipt.RewardPoints)
}

func (a *app) viewCustomer() {
	id := a.readLine("Enter Customer ID: ")
	customer, ok := a.store.FindCustomer(id)
	if !ok {
		fmt.Println("Customer ID not found.")
		return
	}

	fmt.Println("\n--- Customer Details ---")
	fmt.Printf("Customer ID: %s\n", customer.ID())
	fmt.Printf("Username: %s\n", customer.UserName())
	fmt.Printf("First Name: %s\n", customer.FirstName())
	fmt.Printf("Last Name: %s\n", customer.LastName())
	fmt.Printf("Age: %d\n", customer.Age())
	fmt.Printf("Credit Card Number: %s\n", customer.CreditCardNumber())
	fmt.Printf("Reward Points: %d\n", customer.RewardPoints())
}

func (a *app) rewardsMenu() {
	fmt.Println("\n--- Redeem Rewards Menu ---")
	fmt.Println("1. Set Points per Dollar")
	fmt.Println("2. Add Gift")
	fmt.Println("3. Redeem Reward")
	fmt.Println("0. Back to Main Menu")

	switch a.readLine("Select an option: ") {
	case "1":
		ppd, ok := a.readFloat("Enter the number of points awarded per dollar spent: ")
		if !ok || ppd < 0 {
			fmt.Println("Invalid value.")
			return
		}
		a.pointsPerDollar = ppd
		fmt.Printf("Points per dollar updated to: %v\n", ppd)
	case "2":
		name := a.readLine("Enter gift name: ")
		points, ok := a.readInt("Enter points required to redeem this gift: ")
		if !ok {
			return
		}
		a.store.AddGift(domain.NewGift(name, points))
		fmt.Printf("Gift added: %s (requires %d points).\n", name, points)
	case "3":
		a.redeemReward()
	case "0":
	default:
		fmt.Println("Invalid option. Please try again.")
	}
}

func (a *app) redeemReward() {
	customerID := a.readLine("Enter Customer ID: ")
	customer, ok := a.store.FindCustomer(customerID)
	if !ok {
		fmt.Println("Customer ID not found.")
		return
	}

	giftList := a.store.Gifts()
	if len(giftList) == 0 {
		fmt.Println("No gifts available for redemption.")
		return
	}

	fmt.Println("\n--- Available Gifts ---")
	for i, gift := range giftList {
		fmt.Printf("%d. %s (requires %d points)\n", i+1, gift.Name, gift.RequiredPoints)
	}
	fmt.Printf("\nYou have %d reward points.\n", customer.RewardPoints())

	choice, ok := a.readInt("Enter the number of the gift to redeem (0 to cancel): ")
	if !ok {
		return
	}
	if choice == 0 {
		fmt.Println("Redemption canceled.")
		return
	}
	if choice < 1 || choice > len(giftList) {
		fmt.Println("Invalid choice.")
		return
	}

	gift, err := a.store.RedeemGift(customerID, choice-1)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Successfully redeemed: %s\n", gift.Name)
	fmt.Printf("Remaining points: %d\n", customer.RewardPoints())
}

func (a *app) readLine(prompt string) string {
	fmt.Print(prompt)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) readInt(prompt string) (int, bool) {
	value, err := strconv.Atoi(a.readLine(prompt))
	if err != nil {
		fmt.Println("Please enter a whole number.")
		return 0, false
	}
	return value, true
}

func (a *app) readFloat(prompt string) (float64, bool) {
	value, err := strconv.ParseFloat(a.readLine(prompt), 64)
	if err != nil {
		fmt.Println("Please enter a number.")
		return 0, false
	}
	return value, true
}
