// Package codec reads and writes the line-oriented stanza format used by the
// registry's data files. Each record is a fixed number of lines in a fixed
// field order, followed by one blank separator line.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cadendye/term-project/internal/domain"
)

// Stanza sizes, one line per field.
const (
	customerLines    = 7
	productLines     = 4
	transactionLines = 5
)

// ParseError reports a stanza that could not be reconstructed into a record,
// either because a numeric field failed to parse or because the rebuilt fields
// were rejected by the record's own validation.
type ParseError struct {
	Record int    // 1-based record index within the input
	Field  string // field being parsed when the failure occurred
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: %s: %v", e.Record, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(record int, field string, err error) *ParseError {
	return &ParseError{Record: record, Field: field, Err: err}
}

// EncodeCustomers writes each customer as a seven-line stanza in the order
// customerID, userName, firstName, lastName, age, creditCardNumber,
// rewardPoints, each stanza followed by a blank line.
func EncodeCustomers(w io.Writer, customers []*domain.Customer) error {
	for _, c := range customers {
		_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n%d\n%s\n%d\n\n",
			c.ID(), c.UserName(), c.FirstName(), c.LastName(), c.Age(), c.CreditCardNumber(), c.RewardPoints())
		if err != nil {
			return fmt.Errorf("write customer %s: %w", c.ID(), err)
		}
	}
	return nil
}

// DecodeCustomers reads seven-line stanzas and reconstructs customers through
// the validating constructor, preserving input order. Blank lines between
// stanzas are tolerated; an empty input yields an empty slice.
func DecodeCustomers(r io.Reader) ([]*domain.Customer, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var customers []*domain.Customer
	for sc := newStanzaScanner(lines); sc.next(); {
		record := len(customers) + 1
		fields, err := sc.take(customerLines)
		if err != nil {
			return nil, parseErr(record, "stanza", err)
		}

		age, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, parseErr(record, "age", err)
		}
		points, err := strconv.Atoi(fields[6])
		if err != nil {
			return nil, parseErr(record, "rewardPoints", err)
		}

		customer, err := domain.NewCustomer(fields[0], fields[1], fields[2], fields[3], age, fields[5], points)
		if err != nil {
			return nil, parseErr(record, "customer", err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// EncodeProducts writes each product as a four-line stanza in the order
// productID, productName, productPrice, productInventory. The price uses the
// shortest decimal representation that round-trips.
func EncodeProducts(w io.Writer, products []*domain.Product) error {
	for _, p := range products {
		_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%d\n\n",
			p.ID(), p.Name(), strconv.FormatFloat(p.Price(), 'g', -1, 64), p.Inventory())
		if err != nil {
			return fmt.Errorf("write product %s: %w", p.ID(), err)
		}
	}
	return nil
}

// DecodeProducts reads four-line stanzas and reconstructs products through
// the validating constructor. Each decoded product claims its ID in reg, so
// loading into a registry that already issued one of the IDs fails.
func DecodeProducts(r io.Reader, reg *domain.IDRegistry) ([]*domain.Product, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var products []*domain.Product
	for sc := newStanzaScanner(lines); sc.next(); {
		record := len(products) + 1
		fields, err := sc.take(productLines)
		if err != nil {
			return nil, parseErr(record, "stanza", err)
		}

		price, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, parseErr(record, "productPrice", err)
		}
		inventory, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, parseErr(record, "productInventory", err)
		}

		product, err := domain.NewProduct(fields[0], fields[1], price, inventory, reg)
		if err != nil {
			return nil, parseErr(record, "product", err)
		}
		products = append(products, product)
	}
	return products, nil
}

// EncodeTransactions writes each transaction as a five-line stanza in the
// order transactionID, customerID, productIDs, totalAmount, rewardPoints.
func EncodeTransactions(w io.Writer, transactions []*domain.Transaction) error {
	for _, t := range transactions {
		_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n%d\n\n",
			t.ID, t.CustomerID, t.ProductIDs, strconv.FormatFloat(t.TotalAmount, 'g', -1, 64), t.RewardPoints)
		if err != nil {
			return fmt.Errorf("write transaction %s: %w", t.ID, err)
		}
	}
	return nil
}

// DecodeTransactions reads five-line stanzas into transaction records.
func DecodeTransactions(r io.Reader) ([]*domain.Transaction, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var transactions []*domain.Transaction
	for sc := newStanzaScanner(lines); sc.next(); {
		record := len(transactions) + 1
		fields, err := sc.take(transactionLines)
		if err != nil {
			return nil, parseErr(record, "stanza", err)
		}

		total, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, parseErr(record, "totalAmount", err)
		}
		points, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, parseErr(record, "rewardPoints", err)
		}

		transactions = append(transactions, domain.NewTransaction(fields[0], fields[1], fields[2], total, points))
	}
	return transactions, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// stanzaScanner walks a line slice stanza by stanza. Blank lines are only
// separators between stanzas; a field line inside a stanza may itself be
// blank (product names are free text).
type stanzaScanner struct {
	lines []string
	pos   int
}

func newStanzaScanner(lines []string) *stanzaScanner {
	return &stanzaScanner{lines: lines}
}

// next skips separator lines and reports whether another stanza begins.
func (s *stanzaScanner) next() bool {
	for s.pos < len(s.lines) && s.lines[s.pos] == "" {
		s.pos++
	}
	return s.pos < len(s.lines)
}

// take consumes the next n lines as one stanza.
func (s *stanzaScanner) take(n int) ([]string, error) {
	if s.pos+n > len(s.lines) {
		return nil, fmt.Errorf("expected %d lines, got %d: %w", n, len(s.lines)-s.pos, io.ErrUnexpectedEOF)
	}
	fields := s.lines[s.pos : s.pos+n]
	s.pos += n
	return fields, nil
}
