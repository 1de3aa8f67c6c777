package domain

// Customer is a registered member of the reward program. All fields are
// validated once, at construction; an instance is never observable in a
// partially valid state.
type Customer struct {
	id               string
	userName         string
	firstName        string
	lastName         string
	age              int
	creditCardNumber string
	rewardPoints     int
}

// NewCustomer validates every field and returns the customer, or a
// *ValidationError naming the first field that failed. No state is retained
// on failure.
func NewCustomer(id, userName, firstName, lastName string, age int, creditCardNumber string, rewardPoints int) (*Customer, error) {
	if !IsUserNameValid(userName) {
		return nil, invalid("userName", "must start with 'U', up to three digits, then at least six alphanumeric characters")
	}
	if !IsNameValid(firstName) {
		return nil, invalid("firstName", "must be 1-12 alphabetic characters")
	}
	if !IsNameValid(lastName) {
		return nil, invalid("lastName", "must be 1-12 alphabetic characters")
	}
	if !IsAgeValid(age) {
		return nil, invalid("age", "must be between 18 and 100")
	}
	if !IsCreditCardValid(creditCardNumber) {
		return nil, invalid("creditCardNumber", "must match dddd-dddd-dddd with a non-zero first digit")
	}

	return &Customer{
		id:               id,
		userName:         userName,
		firstName:        firstName,
		lastName:         lastName,
		age:              age,
		creditCardNumber: creditCardNumber,
		rewardPoints:     rewardPoints,
	}, nil
}

// ID returns the system-assigned customer identifier.
func (c *Customer) ID() string { return c.id }

// UserName returns the customer's chosen username.
func (c *Customer) UserName() string { return c.userName }

// FirstName returns the customer's first name.
func (c *Customer) FirstName() string { return c.firstName }

// LastName returns the customer's last name.
func (c *Customer) LastName() string { return c.lastName }

// Age returns the customer's age.
func (c *Customer) Age() int { return c.age }

// CreditCardNumber returns the customer's card number.
func (c *Customer) CreditCardNumber() string { return c.creditCardNumber }

// RewardPoints returns the current reward point balance.
func (c *Customer) RewardPoints() int { return c.rewardPoints }

// AddRewardPoints applies delta to the balance. Negative deltas are allowed
// (redemption) and the balance has no floor: it can go below zero.
func (c *Customer) AddRewardPoints(delta int) {
	c.rewardPoints += delta
}
