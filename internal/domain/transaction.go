package domain

// Transaction is a flat checkout log entry. No relational integrity is
// enforced against the live customer or product collections, and the fields
// carry no validation; the type exists for persistence round-tripping.
type Transaction struct {
	ID           string
	CustomerID   string
	ProductIDs   string // comma-joined product identifiers
	TotalAmount  float64
	RewardPoints int
}

// NewTransaction assembles a transaction record from its five stored fields.
func NewTransaction(id, customerID, productIDs string, totalAmount float64, rewardPoints int) *Transaction {
	return &Transaction{
		ID:           id,
		CustomerID:   customerID,
		ProductIDs:   productIDs,
		TotalAmount:  totalAmount,
		RewardPoints: rewardPoints,
	}
}
