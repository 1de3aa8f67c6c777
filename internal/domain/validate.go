package domain

import "regexp"

var (
	userNameRegex   = regexp.MustCompile(`^U\d{0,3}[A-Za-z0-9]{6,}$`)
	nameRegex       = regexp.MustCompile(`^[A-Za-z]{1,12}$`)
	creditCardRegex = regexp.MustCompile(`^[1-9]\d{3}-\d{4}-\d{4}$`)
	productIDRegex  = regexp.MustCompile(`^Prod\d{5}$`)
)

// IsUserNameValid reports whether s is a leading 'U', up to three digits, then
// at least six alphanumeric characters.
func IsUserNameValid(s string) bool {
	return userNameRegex.MatchString(s)
}

// IsNameValid reports whether s is 1 to 12 alphabetic characters.
func IsNameValid(s string) bool {
	return nameRegex.MatchString(s)
}

// IsAgeValid reports whether age is between 18 and 100 inclusive.
func IsAgeValid(age int) bool {
	return age >= 18 && age <= 100
}

// IsCreditCardValid reports whether s is three hyphen-separated groups of four
// digits with a non-zero leading digit.
func IsCreditCardValid(s string) bool {
	return creditCardRegex.MatchString(s)
}

// IsProductIDValid reports whether s is "Prod" followed by exactly five digits.
func IsProductIDValid(s string) bool {
	return productIDRegex.MatchString(s)
}

// IsProductPriceValid reports whether price is strictly positive.
func IsProductPriceValid(price float64) bool {
	return price > 0
}

// IsProductInventoryValid reports whether count is non-negative.
func IsProductInventoryValid(count int) bool {
	return count >= 0
}
