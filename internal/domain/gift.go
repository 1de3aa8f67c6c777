package domain

// Gift is a redeemable reward with a point threshold.
type Gift struct {
	Name           string
	RequiredPoints int
}

// NewGift returns a gift with the given name and redemption threshold.
func NewGift(name string, requiredPoints int) *Gift {
	return &Gift{Name: name, RequiredPoints: requiredPoints}
}
