package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount of minor currency units (cents). All
// arithmetic is integer arithmetic; floating point only appears at the
// construction boundary where DTO values arrive as JSON numbers.
type Money struct {
	cents int64
}

// Balance is an account balance in minor currency units. Unlike Money it
// may be negative, representing overdraft or credit card debt.
type Balance struct {
	cents int64
}

// maxCents keeps float64 construction exact: every integer up to 2^53
// has an exact float64 representation.
const maxCents = int64(1) << 53

// NewMoney validates value as a non-negative whole amount of minor units.
func NewMoney(value float64) (Money, error) {
	return NewMoneyField("amount", value)
}

// NewMoneyField is NewMoney with the error attributed to field.
func NewMoneyField(field string, value float64) (Money, error) {
	cents, err := centsFromFloat(field, value)
	if err != nil {
		return Money{}, err
	}
	if cents < 0 {
		return Money{}, NewInvalidMoneyError(field, value)
	}
	return Money{cents: cents}, nil
}

// MoneyFromCents builds Money from an already-stored cents value.
// Persistence rehydration only; negative input is still rejected.
func MoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, NewInvalidMoneyError("amount", cents)
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Add(o Money) Money { return Money{cents: m.cents + o.cents} }

func (m Money) GreaterThan(o Money) bool { return m.cents > o.cents }

func (m Money) Equal(o Money) bool { return m.cents == o.cents }

// Decimal returns the amount in major units (e.g. 1234 cents -> 12.34).
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.cents, -2) }

func (m Money) String() string { return m.Decimal().StringFixed(2) }

// NewBalance validates value as a whole amount of minor units. Negative
// balances are legal.
func NewBalance(value float64) (Balance, error) {
	return NewBalanceField("balance", value)
}

// NewBalanceField is NewBalance with the error attributed to field.
func NewBalanceField(field string, value float64) (Balance, error) {
	cents, err := centsFromFloat(field, value)
	if err != nil {
		return Balance{}, err
	}
	return Balance{cents: cents}, nil
}

// BalanceFromCents builds a Balance from an already-stored cents value.
func BalanceFromCents(cents int64) Balance {
	return Balance{cents: cents}
}

func (b Balance) Cents() int64 { return b.cents }

func (b Balance) IsNegative() bool { return b.cents < 0 }

func (b Balance) Add(m Money) Balance { return Balance{cents: b.cents + m.cents} }

func (b Balance) Sub(m Money) Balance { return Balance{cents: b.cents - m.cents} }

// CanCover reports whether debiting m would keep the balance at or
// above zero.
func (b Balance) CanCover(m Money) bool { return b.cents >= m.cents }

func (b Balance) Equal(o Balance) bool { return b.cents == o.cents }

func (b Balance) Decimal() decimal.Decimal { return decimal.New(b.cents, -2) }

func (b Balance) String() string { return b.Decimal().StringFixed(2) }

func centsFromFloat(field string, value float64) (int64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, NewInvalidMoneyError(field, value)
	}
	if value != math.Trunc(value) {
		return 0, NewInvalidMoneyError(field, value)
	}
	if value > float64(maxCents) || value < -float64(maxCents) {
		return 0, NewInvalidMoneyError(field, value)
	}
	return int64(value), nil
}
