package kitty

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a ledger does not declare one.
const DefaultCurrency = "EUR"

// Money represents a monetary value in a single currency.
//
// The value is kept at full decimal precision. Rounding to the currency's
// minor unit only happens on output (String, MarshalJSON) and at the
// settlement boundary (Round).
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from any supported numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal string like "12.50" into a Money.
func ParseMoney(s string, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d, cur: currency}, nil
}

// ValidateCurrency returns ErrInvalidCurrency if code is not a known ISO 4217 code.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return &FieldError{Source: "ledger", Field: "currency", Value: code, err: ErrInvalidCurrency}
	}
	return nil
}

// currency returns the money's currency definition.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// fraction is the number of digits of the currency minor unit.
func (m Money) fraction() int32 {
	return int32(m.currency().Fraction)
}

// String returns the value formatted for its currency, rounded to the minor unit.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// Fixed returns the plain decimal representation rounded to the minor unit, without symbol.
func (m Money) Fixed() string { return m.value.StringFixed(m.fraction()) }

// Round returns m rounded to its currency minor unit.
func (m Money) Round() Money { return Money{value: m.value.Round(m.fraction()), cur: m.cur} }

// Unit returns the smallest representable amount of m's currency (0.01 for EUR).
func (m Money) Unit() Money {
	return Money{value: decimal.New(1, -m.fraction()), cur: m.cur}
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(w Weight) Money              { return Money{value: m.value.Mul(w.value), cur: m.cur} }
func (m Money) Div(w Weight) Money              { return Money{value: m.value.Div(w.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Min returns the smallest of m and n.
func (m Money) Min(n Money) Money {
	if n.LessThan(m) {
		return Money{value: n.value, cur: cur(m, n)}
	}
	return Money{value: m.value, cur: cur(m, n)}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	r := m.Round()
	if r.value.IsZero() {
		return "-"
	}
	if r.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the amount rounded to the currency minor unit.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(m.fraction()).MarshalJSON()
}
