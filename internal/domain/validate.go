package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Bounds of the users and transactions columns.
const (
	AmountScale         = 2
	MaxHandleLen        = 64
	MaxNameLen          = 255
	MaxPhoneLen         = 32
	MaxClabeLen         = 18
	MaxCategoryLen      = 64
	CurrencyCodeLen     = 3
	amountIntegerDigits = 18
)

var maxAmount = decimal.New(1, amountIntegerDigits)

// ValidateAmount accepts positive amounts in whole cents that fit NUMERIC(20,2).
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", ErrValidation, amount, AmountScale)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: amount %s is too large", ErrValidation, amount)
	}
	return nil
}

// ValidateCurrency accepts an ISO 4217 style code: three upper case letters.
func ValidateCurrency(code string) error {
	if len(code) != CurrencyCodeLen {
		return fmt.Errorf("%w: currency %q must be a %d letter code", ErrValidation, code, CurrencyCodeLen)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: currency %q must be a %d letter code", ErrValidation, code, CurrencyCodeLen)
		}
	}
	return nil
}

// ValidateLength checks value is at most max characters long.
func ValidateLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s is longer than %d characters", ErrValidation, field, max)
	}
	return nil
}
