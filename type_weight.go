package kitty

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Weight is the relative part of an expense a participant bears.
type Weight struct {
	value decimal.Decimal
}

// W creates a Weight.
func W[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

// one is the default weight.
var one = W(1)

// parseWeight parses s as a strictly positive weight.
func parseWeight(s string) (Weight, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return Weight{}, false
	}
	return Weight{value: d}, true
}

func (w Weight) Equal(p Weight) bool      { return w.value.Equal(p.value) }
func (w Weight) Add(p Weight) Weight      { return Weight{value: w.value.Add(p.value)} }
func (w Weight) IsPositive() bool         { return w.value.IsPositive() }
func (w Weight) IsZero() bool             { return w.value.IsZero() }
func (w Weight) String() string           { return w.value.String() }
func (w Weight) Decimal() decimal.Decimal { return w.value }

// MarshalJSON implements the json.Marshaler interface.
func (w Weight) MarshalJSON() ([]byte, error) {
	return w.value.MarshalJSON()
}
