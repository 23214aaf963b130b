package fintrack

import (
	"bytes"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is an exact decimal value: a balance, a price, or a transaction amount.
//
// Amounts carry no currency, the owning Account does. The zero value is 0.
type Amount struct {
	value decimal.Decimal
}

type number interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T number](value T) decimal.Decimal {
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

// A returns the Amount for value.
func A[T number](value T) Amount { return Amount{value: newDecimal(value)} }

// ParseAmount parses a decimal string like "1234.5".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount          { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(q int64) Amount           { return Amount{value: a.value.Mul(decimal.NewFromInt(q))} }
func (a Amount) Div(q int64) Amount           { return Amount{value: a.value.Div(decimal.NewFromInt(q))} }
func (a Amount) Neg() Amount                  { return Amount{value: a.value.Neg()} }
func (a Amount) Abs() Amount                  { return Amount{value: a.value.Abs()} }
func (a Amount) Equal(b Amount) bool          { return a.value.Equal(b.value) }
func (a Amount) Cmp(b Amount) int             { return a.value.Cmp(b.value) }
func (a Amount) LessThan(b Amount) bool       { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.value.GreaterThan(b.value) }
func (a Amount) IsZero() bool                 { return a.value.IsZero() }
func (a Amount) IsPositive() bool             { return a.value.IsPositive() }
func (a Amount) IsNegative() bool             { return a.value.IsNegative() }
func (a Amount) Decimal() decimal.Decimal     { return a.value }
func (a Amount) String() string               { return a.value.String() }

// StringFixed returns the amount rounded to places digits.
func (a Amount) StringFixed(places int32) string { return a.value.StringFixed(places) }

// Percent returns a/b*100, 0 when b is zero.
func (a Amount) Percent(b Amount) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.value.Div(b.value).Mul(decimal.NewFromInt(100))
}

// Format returns the amount in the conventional notation of the currency, e.g. "$1,234.50".
func (a Amount) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON reads a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*a = Amount{}
		return nil
	}
	return a.value.UnmarshalJSON(data)
}
