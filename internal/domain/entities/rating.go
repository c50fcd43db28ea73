package entities

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rating is a review score held as an exact decimal. It is stored in the
// database as NUMERIC and rendered to clients as a JSON number.
type Rating struct {
	decimal.Decimal
}

// NewRating returns the exact decimal form of f, e.g. 4.5 stays 4.5 rather
// than its nearest binary approximation.
func NewRating(f float64) Rating {
	return Rating{Decimal: decimal.NewFromFloat(f)}
}

// ParseRating parses a decimal string such as "4.5".
func ParseRating(s string) (Rating, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rating{}, fmt.Errorf("invalid rating %q: %w", s, err)
	}
	return Rating{Decimal: d}, nil
}

// Float64 returns the rating as a float for transport.
func (r Rating) Float64() float64 {
	return r.InexactFloat64()
}

// MarshalJSON renders the rating as a bare JSON number.
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(r.Decimal.String()), nil
}

// UnmarshalJSON accepts both numbers and numeric strings.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.Decimal = decimal.Zero
		return nil
	}
	parsed, err := ParseRating(string(data))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value implements driver.Valuer.
func (r Rating) Value() (driver.Value, error) {
	return r.Decimal.Value()
}

// Scan implements sql.Scanner.
func (r *Rating) Scan(value interface{}) error {
	return r.Decimal.Scan(value)
}
