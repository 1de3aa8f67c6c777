package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Parallel()

	customer, err := NewCustomer("CustID0000000001", "U111abcdef", "John", "Doe", 30, "1111-1111-1111", 100)
	require.NoError(t, err)

	assert.Equal(t, "CustID0000000001", customer.ID())
	assert.Equal(t, "U111abcdef", customer.UserName())
	assert.Equal(t, "John", customer.FirstName())
	assert.Equal(t, "Doe", customer.LastName())
	assert.Equal(t, 30, customer.Age())
	assert.Equal(t, "1111-1111-1111", customer.CreditCardNumber())
	assert.Equal(t, 100, customer.RewardPoints())
}

func TestNewCustomerRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		userName  string
		firstName string
		lastName  string
		age       int
		card      string
		wantField string
	}{
		{"short username", "short", "John", "Doe", 30, "1111-1111-1111", "userName"},
		{"numeric first name", "U111abcdef", "J0hn", "Doe", 30, "1111-1111-1111", "firstName"},
		{"long last name", "U111abcdef", "John", "Doooooooooooe", 30, "1111-1111-1111", "lastName"},
		{"underage", "U111abcdef", "John", "Doe", 17, "1111-1111-1111", "age"},
		{"overage", "U111abcdef", "John", "Doe", 101, "1111-1111-1111", "age"},
		{"bad card", "U111abcdef", "John", "Doe", 30, "0111-1111-1111", "creditCardNumber"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			customer, err := NewCustomer("CustID0000000001", tc.userName, tc.firstName, tc.lastName, tc.age, tc.card, 0)
			assert.Nil(t, customer)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantField, vErr.Field)
		})
	}
}

func TestAddRewardPoints(t *testing.T) {
	t.Parallel()

	customer, err := NewCustomer("CustID0000000001", "U111abcdef", "John", "Doe", 30, "1111-1111-1111", 100)
	require.NoError(t, err)

	customer.AddRewardPoints(50)
	assert.Equal(t, 150, customer.RewardPoints())

	customer.AddRewardPoints(-100)
	assert.Equal(t, 50, customer.RewardPoints())

	// There is no floor: redemption deltas can drive the balance negative.
	customer.AddRewardPoints(-75)
	assert.Equal(t, -25, customer.RewardPoints())
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := NewCustomer("X", "short", "John", "Doe", 30, "1111-1111-1111", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "userName")

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}
