package valueobject

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
	CAD Currency = "CAD" // Canadian Dollar
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = USD

// minorUnitsPerMajor is the scale between minor and major units (cents per
// dollar). All supported currencies are two-decimal currencies.
const minorUnitsPerMajor = 100

// Money is a value object representing a monetary amount as integer minor
// units (cents). Keeping amounts integral makes repeated addition exact;
// fractional results only appear transiently inside a multiplication and are
// rounded half away from zero before they land back in a Money.
// Money is immutable - all operations return new Money instances.
type Money struct {
	minor    int64
	currency Currency
}

// NewMoney creates a new Money from minor units and a currency
func NewMoney(minorUnits int64, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{minor: minorUnits, currency: currency}, nil
}

// NewMoneyUSD creates Money in USD from minor units (cents)
func NewMoneyUSD(minorUnits int64) Money {
	return Money{minor: minorUnits, currency: USD}
}

// NewMoneyFromDecimal creates Money from a major-unit decimal amount
// (e.g. "12.345" dollars), rounding half away from zero to whole cents.
func NewMoneyFromDecimal(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	minor := amount.Mul(decimal.NewFromInt(minorUnitsPerMajor)).Round(0).IntPart()
	return Money{minor: minor, currency: currency}, nil
}

// NewMoneyFromString creates Money from a major-unit string amount
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoneyFromDecimal(d, currency)
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{minor: 0, currency: currency}
}

// ZeroUSD returns a zero-value Money in USD
func ZeroUSD() Money {
	return Zero(USD)
}

// MinorUnits returns the amount in integer minor units
func (m Money) MinorUnits() int64 {
	return m.minor
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.minor == 0
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.minor > 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.minor < 0
}

// Add returns a new Money with the sum of both amounts
// Returns error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{minor: m.minor + other.minor, currency: m.currency}, nil
}

// MustAdd adds two Money values, panics if currencies don't match
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Subtract returns a new Money with the difference
// Returns error if currencies don't match
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{minor: m.minor - other.minor, currency: m.currency}, nil
}

// Negate returns a new Money with the sign reversed
func (m Money) Negate() Money {
	return Money{minor: -m.minor, currency: m.currency}
}

// MultiplyByInt returns a new Money multiplied by an integer quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{minor: m.minor * factor, currency: m.currency}
}

// MultiplyDecimal returns a new Money multiplied by a decimal quantity
// (hours, terabytes). The exact product in minor units is rounded half away
// from zero to a whole number of minor units.
func (m Money) MultiplyDecimal(factor decimal.Decimal) Money {
	minor := decimal.NewFromInt(m.minor).Mul(factor).Round(0).IntPart()
	return Money{minor: minor, currency: m.currency}
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.minor == other.minor
}

// Compare returns -1, 0 or 1 comparing this Money to other.
// Returns error if currencies don't match.
func (m Money) Compare(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, fmt.Errorf("cannot compare money with different currencies: %s and %s", m.currency, other.currency)
	}
	switch {
	case m.minor < other.minor:
		return -1, nil
	case m.minor > other.minor:
		return 1, nil
	default:
		return 0, nil
	}
}

// Decimal returns the amount in major units as an exact decimal.
// This is the display boundary; internal arithmetic stays in minor units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.minor).Div(decimal.NewFromInt(minorUnitsPerMajor))
}

// String returns a string representation such as "12.34 USD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(2), m.currency)
}

// moneyJSON is the wire form: integer minor units plus a currency tag.
type moneyJSON struct {
	MinorUnits int64    `json:"minor_units"`
	Currency   Currency `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{MinorUnits: m.minor, Currency: m.currency})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}
	m.minor = v.MinorUnits
	m.currency = v.Currency
	return nil
}
