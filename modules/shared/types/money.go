package types

import (
	"fmt"
)

// Money represents a monetary value with currency.
// Immutable value object - all operations return new instances.
// The zero value means "no price has been computed yet".
type Money struct {
	amount   int64  // Amount in smallest currency unit (cents)
	currency string // ISO 4217 currency code
}

func NewMoney(amount int64, currency string) (Money, error) {
	if currency == "" {
		return Money{}, fmt.Errorf("currency is required")
	}
	if len(currency) != 3 {
		return Money{}, fmt.Errorf("currency must be 3-letter ISO code")
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }

// IsZero reports whether no value has been set at all.
// A computed total of 0 still carries a currency and is not zero.
func (m Money) IsZero() bool { return m.currency == "" }

// Add returns the sum of two monetary values.
// Adding to the zero value adopts the other side's currency, which lets
// callers fold a price list starting from Money{}.
func (m Money) Add(other Money) (Money, error) {
	if m.IsZero() {
		return other, nil
	}
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) String() string {
	if m.IsZero() {
		return "unpriced"
	}
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
