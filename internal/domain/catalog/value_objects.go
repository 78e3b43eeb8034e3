package catalog

import "errors"

var (
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrEmptyLabel    = errors.New("label cannot be empty")
	ErrEmptyKey      = errors.New("key cannot be empty")
)

// Money is an amount in satang (hundredths of the billing currency).
// Keeping integer cents means all catalog arithmetic is exact; rounding
// happens once, at the final reported accrual value.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulQuantity(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}
