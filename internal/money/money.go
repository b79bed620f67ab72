// Package money holds the USD amount type shared by the calculators, the
// models and the JSON surface. Every monetary or percentage value in the
// system is rounded here, half away from zero, to two fraction digits.
package money

import (
	"database/sql/driver"
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	// Currency is the only currency the system handles.
	Currency = gomoney.USD
	// Places is the number of fraction digits kept for money and percentages.
	Places = 2
)

var hundred = decimal.NewFromInt(100)

// Amount is a monetary value in USD major units.
type Amount struct {
	value decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// New builds an Amount from a numeric value.
func New[T float64 | int | int64 | decimal.Decimal](v T) Amount {
	switch x := any(v).(type) {
	case float64:
		return Amount{value: decimal.NewFromFloat(x)}
	case int:
		return Amount{value: decimal.NewFromInt(int64(x))}
	case int64:
		return Amount{value: decimal.NewFromInt(x)}
	case decimal.Decimal:
		return Amount{value: x}
	}
	return Zero
}

// Parse reads a decimal string such as "1000" or "99.95".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Round rounds d to two fraction digits, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns part/total*100 rounded to two digits, or 0 when total is zero.
func Percent(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return Round(part.Mul(hundred).Div(total)).InexactFloat64()
}

func (a Amount) Decimal() decimal.Decimal     { return a.value }
func (a Amount) Rounded() Amount              { return Amount{value: Round(a.value)} }
func (a Amount) Add(b Amount) Amount          { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(d decimal.Decimal) Amount { return Amount{value: a.value.Mul(d)} }
func (a Amount) Cmp(b Amount) int             { return a.value.Cmp(b.value) }
func (a Amount) Equal(b Amount) bool          { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool       { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.value.GreaterThan(b.value) }
func (a Amount) IsZero() bool                 { return a.value.IsZero() }
func (a Amount) IsPositive() bool             { return a.value.IsPositive() }
func (a Amount) Float64() float64             { return a.value.InexactFloat64() }

// String returns the amount with exactly two fraction digits, e.g. "5600.00".
func (a Amount) String() string {
	return a.value.StringFixed(Places)
}

// Format renders the amount for people, e.g. "$1,000.00".
func (a Amount) Format() string {
	cents := a.value.Shift(Places).Round(0).IntPart()
	return gomoney.New(cents, Currency).Display()
}

// MarshalJSON writes the amount as a JSON number with two fraction digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*a = Zero
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(value any) error {
	if value == nil {
		*a = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("scan amount: %w", err)
	}
	a.value = d
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}
